package crawler

import (
	"errors"
	"fmt"
)

// Application error codes. They map the crawl failure taxonomy onto a small
// set of machine-readable values carried alongside human-readable messages.
const (
	ECONFIG   = "config"    // contradictory or missing options; fatal before any fetch
	ECACHE    = "cache"     // persistent store unreadable or unwritable; fatal
	EFETCH    = "fetch"     // network or HTTP failure; page marked failed, crawl continues
	EEXTRACT  = "extract"   // no usable content recoverable; page marked failed
	EINVALID  = "invalid"   // validation failed (malformed URL, bad input)
	ENOTFOUND = "not_found" // resource does not exist (cache miss)
	EINTERNAL = "internal"  // internal error
)

// Error represents an application-specific error. Application errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("crawler error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
