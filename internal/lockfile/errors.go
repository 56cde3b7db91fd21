package lockfile

import (
	"fmt"
)

type ErrorType int

const (
	ErrorTypeRead ErrorType = iota
	ErrorTypeWrite
	ErrorTypeParse
)

// LockError marks a failure to read or write the lock document. Installed
// state bookkeeping cannot be trusted afterwards, so callers treat it as
// fatal to the whole command rather than one item.
type LockError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *LockError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LockError) Unwrap() error {
	return e.Err
}

func (e *LockError) Is(target error) bool {
	if t, ok := target.(*LockError); ok {
		return e.Type == t.Type
	}
	return false
}
