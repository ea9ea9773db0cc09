package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("io error")

	ErrNoDocument = errors.New("no document")
	ErrTabIndex   = errors.New("tab index out of range")
)

// IOError reports a failed filesystem read or write. The session is left
// exactly as it was before the operation started.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

type tabIndexError struct {
	index int
	len   int
}

func (e tabIndexError) Error() string {
	return fmt.Sprintf("tab index %d out of range [0,%d)", e.index, e.len)
}

func (e tabIndexError) Is(target error) bool { return target == ErrTabIndex }
