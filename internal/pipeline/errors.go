package pipeline

import (
	"errors"
)

// Kind classifies why a request failed.
type Kind string

const (
	KindBadRequest         Kind = "BadRequest"
	KindConversionFailure  Kind = "ConversionFailure"
	KindModelFailure       Kind = "ModelFailure"
	KindExtractionFailure  Kind = "ExtractionFailure"
	KindPersistenceFailure Kind = "PersistenceFailure"
)

// Error is the single failure type returned by Service.Run.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	if e.Reason == "" {
		return e.Err.Error()
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// CallerError reports whether the failure was caused by the request itself.
func (e *Error) CallerError() bool { return e.Kind == KindBadRequest }

func fail(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf returns the classification of err, or "" when err is not a pipeline error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
