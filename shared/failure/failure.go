package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Err optionally keeps the cause so callers can still match sentinel errors.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap returns the cause of the failure, if any.
func (e *Failure) Unwrap() error {
	return e.Err
}

// Wrap returns a new Failure with the given code and message that keeps err as its cause.
func Wrap(code int, msg string, err error) error {
	return &Failure{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Err:     err,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for actors lacking authority over a resource.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries a Failure with the given code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
