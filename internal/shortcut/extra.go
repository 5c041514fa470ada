package shortcut

// extraData is an insertion-ordered string map. Re-assigning a key keeps its
// original position.
type extraData struct {
	keys   []string
	values map[string]string
}

func newExtraData() *extraData {
	return &extraData{values: make(map[string]string)}
}

func (e *extraData) get(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

func (e *extraData) put(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *extraData) remove(key string) {
	if _, ok := e.values[key]; !ok {
		return
	}
	delete(e.values, key)
	for i, k := range e.keys {
		if k == key {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			return
		}
	}
}

func (e *extraData) len() int {
	return len(e.keys)
}
