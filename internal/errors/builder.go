package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError carries a user-safe hint and structured details alongside the
// wrapped cause. The cause chain (including the sentinel mark) is preserved
// for classification; the hint and details are what may be exposed to callers.
type InternalError struct {
	cause   error
	hint    string
	details map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.cause == nil {
		return e.hint
	}
	return e.cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-safe hint attached to the error chain, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// Details returns the reportable details attached to the error chain, if any.
func (e *InternalError) Details() map[string]interface{} {
	return e.details
}

// ErrorBuilder builds an error with optional hint, details and sentinel mark.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error from a message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{cause: errors.New(message)},
	}
}

// NewErrorf starts building an error from a formatted message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error that wraps an existing cause.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{cause: err},
	}
}

// WithHint attaches a user-safe hint shown to API callers.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-safe hint shown to API callers.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details that are safe to return
// in API responses.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark finalizes the builder, marking the error with the given sentinel.
func (b *ErrorBuilder) Mark(sentinel error) error {
	b.err.cause = errors.Mark(b.err.cause, sentinel)
	return b.err
}

// Hint walks the error chain and returns the first attached hint.
func Hint(err error) string {
	for err != nil {
		if ie, ok := err.(*InternalError); ok && ie.hint != "" {
			return ie.hint
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// Details walks the error chain and returns the first attached details map.
func Details(err error) map[string]interface{} {
	for err != nil {
		if ie, ok := err.(*InternalError); ok && ie.details != nil {
			return ie.details
		}
		err = errors.Unwrap(err)
	}
	return nil
}
