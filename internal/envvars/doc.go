// Package envvars models an ordered set of environment-variable assignments and
// the flat text encoding used to persist them.
//
// The encoding renders each entry as KEY=VALUE and joins entries with a single
// space, preserving insertion order. It carries no escaping: values containing
// whitespace cannot be represented, and Validate reports them before they are
// written anywhere.
package envvars
