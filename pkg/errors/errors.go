package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTransfer       = errors.New("transfer failed")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
)

// Kind is the coarse class of a pipeline failure.
type Kind string

const (
	KindTransfer       Kind = "transfer"
	KindMarkerNotFound Kind = "marker_not_found"
	KindInvalidInput   Kind = "invalid_input"
	KindInternal       Kind = "internal"
)

// AppError attaches a human message and, for transfer failures, the remote
// HTTP status (0 when no response was received) to a sentinel.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	cause      error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// TransferError reports a failed network retrieval. cause may be nil when the
// server answered with a non-success status.
func TransferError(statusCode int, cause error, format string, args ...any) *AppError {
	e := Newf(ErrTransfer, statusCode, format, args...)
	e.cause = cause
	return e
}

// MarkerNotFound reports that a content marker is missing from a document.
func MarkerNotFound(which, marker string) *AppError {
	return Newf(ErrMarkerNotFound, 0, "%s marker %q not found", which, marker)
}

func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrTransfer):
		return KindTransfer
	case errors.Is(err, ErrMarkerNotFound):
		return KindMarkerNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// StatusCode returns the remote HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}
