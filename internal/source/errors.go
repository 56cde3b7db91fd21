package source

import (
	"fmt"
)

type ErrorType int

const (
	// ErrorTypeUnparseable marks a source string that matches no known pattern.
	ErrorTypeUnparseable ErrorType = iota
	// ErrorTypeFetch marks a network or HTTP failure after any documented fallback.
	ErrorTypeFetch
	// ErrorTypeNotFound marks a local path that exists but holds no content file.
	ErrorTypeNotFound
)

type SourceError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (e *SourceError) Is(target error) bool {
	if t, ok := target.(*SourceError); ok {
		return e.Type == t.Type
	}
	return false
}
