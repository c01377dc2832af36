package models

import "fmt"

// Stable error codes surfaced to API consumers.
const (
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
)

// AppError is a user-visible failure with a stable code and message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// InvalidArgument reports a malformed or out-of-range caller input.
func InvalidArgument(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// InvalidConfiguration reports an unusable simulation configuration.
// Raised before any work begins and before any partial output is produced.
func InvalidConfiguration(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInvalidConfiguration, Message: fmt.Sprintf(format, args...)}
}
