// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an application error and decides its HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

// Error is the application error type surfaced by services.
// Handlers translate it into a JSON body and status code at the boundary.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a 400-class input error.
func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

// Auth creates a 401 credentials error.
func Auth(msg string) error { return &Error{Kind: KindAuth, Msg: msg} }

// NotFound creates a 404 missing-record error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflict creates a duplicate-resource error. Served as 400, matching the
// register endpoint's contract for duplicate usernames.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// Map converts repo/infra errors into application errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Msg: "record not found", Err: err}

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Msg: "record already exists", Err: err}

	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindInternal, Msg: "request timed out", Err: err}

	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindInternal, Msg: "request was canceled", Err: err}

	default:
		return &Error{Kind: KindInternal, Msg: err.Error(), Err: err}
	}
}

// HTTPStatus returns the status code an error should be served with.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
