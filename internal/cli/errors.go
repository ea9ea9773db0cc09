package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidValueError struct {
	name    string
	value   string
	allowed string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (want %s)", e.name, e.value, e.allowed)
}

func errInvalidValue(name, value, allowed string) error {
	return invalidValueError{name: name, value: value, allowed: allowed}
}
