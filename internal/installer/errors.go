package installer

import (
	"fmt"
)

type ErrorType int

const (
	// ErrorTypeDestinationConflict marks a destination occupied by content
	// this tool does not own. Reported per (item, assistant) pair.
	ErrorTypeDestinationConflict ErrorType = iota
	ErrorTypeFilesystem
	ErrorTypeMissingContent
)

type InstallError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

func (e *InstallError) Is(target error) bool {
	if t, ok := target.(*InstallError); ok {
		return e.Type == t.Type
	}
	return false
}

// Logger is the structured logging hook used by the installer.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

type NoOpLogger struct{}

func (l NoOpLogger) Debug(msg string, fields ...interface{})            {}
func (l NoOpLogger) Info(msg string, fields ...interface{})             {}
func (l NoOpLogger) Warn(msg string, fields ...interface{})             {}
func (l NoOpLogger) Error(msg string, err error, fields ...interface{}) {}
