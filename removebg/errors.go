package removebg

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNetwork - the request never completed: connection refused, DNS failure,
// aborted body read and the like. Distinct from a backend that answered with
// a non-success status.
var ErrNetwork = errors.New("removebg request could not complete")

// ResponseError carries the non-2xx status the backend replied with.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("removebg backend replied with status %d", e.StatusCode)
	}

	return fmt.Sprintf("removebg backend replied with status %d: %s", e.StatusCode, e.Body)
}

type ValidationError struct {
	errors map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{errors: make(map[string]string)}
}

func (err *ValidationError) Add(k, v string) {
	err.errors[k] = v
}

func (err *ValidationError) Empty() bool {
	return len(err.errors) == 0
}

func (err *ValidationError) Error() string {
	return fmt.Sprint("Validation")
}

func (err *ValidationError) Errors() map[string]string {
	return err.errors
}
