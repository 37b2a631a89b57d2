package errors

import (
	"errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeFetch      ErrCode = "FETCH_ERROR"
	ErrCodeIO         ErrCode = "IO_ERROR"
	ErrCodeRender     ErrCode = "RENDER_ERROR"
	ErrCodeNotFound   ErrCode = "NOT_FOUND"
	ErrCodeInternal   ErrCode = "INTERNAL_ERROR"
	ErrCodeBadRequest ErrCode = "BAD_REQUEST"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewFetchError creates an error for failures talking to the GitHub API
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetch,
		Message: message,
		Err:     err,
	}
}

// NewIOError creates an error for filesystem failures
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: message,
		Err:     err,
	}
}

// NewRenderError creates an error for template parse and execution failures
func NewRenderError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRender,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" if there is none
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsFetch checks if the error is a fetch error
func IsFetch(err error) bool {
	return CodeOf(err) == ErrCodeFetch
}

// IsIO checks if the error is an I/O error
func IsIO(err error) bool {
	return CodeOf(err) == ErrCodeIO
}

// IsRender checks if the error is a render error
func IsRender(err error) bool {
	return CodeOf(err) == ErrCodeRender
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}
