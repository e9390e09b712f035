// Package errors holds the error taxonomy shared by the storage, repository
// and router layers, plus the formatting helpers used by the command line.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/agenda/internal/logger"
)

var (
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = stderrors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when no storage exists at the configured path.
	ErrNotInitialized = stderrors.New("storage not initialized, run 'agenda init' first")
	// ErrConfirmationRequired is returned when a destructive action needs the
	// user to confirm before it is applied. No mutation has happened.
	ErrConfirmationRequired = stderrors.New("confirmation required")
	// ErrCorruptStorage is returned when writing to a storage file that cannot
	// be decoded. The file is left untouched.
	ErrCorruptStorage = stderrors.New("storage file is corrupt, restore a backup with 'agenda backup restore'")
	// ErrConfirmationDeclined is returned when the user declined a destructive action.
	ErrConfirmationDeclined = stderrors.New("confirmation declined")
)

// MalformedValueError reports a persisted value that could not be decoded.
// Readers treat it as an absent value; it is surfaced only by diagnostics.
type MalformedValueError struct {
	Key string
	Err error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value at %q: %v", e.Key, e.Err)
}

func (e *MalformedValueError) Unwrap() error { return e.Err }

// ValidationError reports user input outside the allowed range.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsMalformed reports whether err is or wraps a MalformedValueError.
func IsMalformed(err error) bool {
	var me *MalformedValueError
	return stderrors.As(err, &me)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
