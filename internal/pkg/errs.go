package pkg

import (
	"errors"
	"net/http"
)

// ErrKind classifies request failures so handlers can map them to a status
// without string matching.
type ErrKind int

const (
	KindInternal ErrKind = iota
	KindValidation
	KindNotFound
	KindPolicy
)

// AppError is a typed failure with a human-readable reason. Internal faults
// wrap the underlying data-store error; client errors usually don't.
type AppError struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *AppError) Unwrap() error { return e.Err }

func Invalid(msg string) error  { return &AppError{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) error { return &AppError{Kind: KindNotFound, Msg: msg} }
func Policy(msg string) error   { return &AppError{Kind: KindPolicy, Msg: msg} }

func Internal(err error) error {
	return &AppError{Kind: KindInternal, Msg: "internal error", Err: err}
}

// HTTPStatus maps an error to the response status. Unclassified errors are
// treated as internal faults.
func HTTPStatus(err error) int {
	var ae *AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPolicy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
