package engine

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrValidation indicates that a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates that a lookup by id, email or category yielded nothing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates that the password did not match the user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStore indicates that the data store failed.
	ErrStore = errors.New("store failure")
)

// Error is returned by all manager operations.
// It matches its Kind and its cause with errors.Is.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the human readable message of a manager error.
// Store failures and foreign errors are reported generically.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(e.Kind, ErrStore) {
		return e.Message
	}
	return "Internal server error"
}

func validationError(message string, cause error) error {
	return &Error{Kind: ErrValidation, Message: message, Err: cause}
}

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func storeError(message string, cause error) error {
	return &Error{Kind: ErrStore, Message: message, Err: cause}
}

// lookupError classifies a store error, "record not found" becomes ErrNotFound.
func lookupError(err error, notFoundMessage, storeMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(notFoundMessage)
	}
	return storeError(storeMessage, err)
}
