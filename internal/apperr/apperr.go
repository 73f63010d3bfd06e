package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure. Every error returned by the schedule and
// booking services carries exactly one kind so that callers can react without
// string matching.
type Kind string

const (
	KindInvalidInterval       Kind = "invalid_interval"
	KindOutsideOperatingHours Kind = "outside_operating_hours"
	KindScheduleConflict      Kind = "schedule_conflict"
	KindOutOfBounds           Kind = "out_of_bounds"
	KindNotFound              Kind = "not_found"
	KindAborted               Kind = "aborted"
)

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf returns the kind carried by err, or "" if err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Reason returns the human-readable reason, falling back to err.Error() for
// non-domain errors.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return err.Error()
}

// Retryable reports whether the caller may safely resubmit the identical
// request. Only aborted commits qualify: no partial state was written.
func Retryable(err error) bool {
	return KindOf(err) == KindAborted
}

// HTTPStatus maps a domain error to a response status. Unknown errors map to
// 500 so that bugs are never presented as caller mistakes.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInterval, KindOutsideOperatingHours, KindOutOfBounds:
		return http.StatusBadRequest
	case KindScheduleConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAborted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
