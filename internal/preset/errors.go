package preset

import "errors"

var (
	// ErrNotFound indicates no preset with the requested id exists.
	ErrNotFound = errors.New("preset not found")
	// ErrBuiltin indicates an operation that only applies to custom presets.
	ErrBuiltin = errors.New("built-in presets cannot be modified")
	// ErrUnencodable indicates a name or variable the stored format cannot represent.
	ErrUnencodable = errors.New("preset cannot be encoded")
)
