package api

import (
	"errors"
	"net/http"

	"studyflow/internal/pipeline"
)

type apiError struct {
	Code    string
	Kind    string
	Message string
}

func statusFor(err error) int {
	var pe *pipeline.Error
	if errors.As(err, &pe) && pe.CallerError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// toAPIError maps a failure to a stable error code. Pipeline failures keep their
// message so the caller sees the cause.
func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	if err != nil {
		msg = err.Error()
	}

	var pe *pipeline.Error
	if errors.As(err, &pe) {
		switch pe.Kind {
		case pipeline.KindBadRequest:
			return apiError{Code: "SF-API-4001", Kind: string(pe.Kind), Message: msg}
		case pipeline.KindConversionFailure:
			return apiError{Code: "SF-PIPE-5001", Kind: string(pe.Kind), Message: msg}
		case pipeline.KindModelFailure:
			return apiError{Code: "SF-PIPE-5002", Kind: string(pe.Kind), Message: msg}
		case pipeline.KindExtractionFailure:
			return apiError{Code: "SF-PIPE-5003", Kind: string(pe.Kind), Message: msg}
		case pipeline.KindPersistenceFailure:
			return apiError{Code: "SF-DB-5001", Kind: string(pe.Kind), Message: msg}
		}
	}

	switch {
	case status >= 500:
		return apiError{Code: "SF-API-5000", Kind: "InternalError", Message: msg}
	case status == http.StatusBadRequest:
		return apiError{Code: "SF-API-4001", Kind: string(pipeline.KindBadRequest), Message: msg}
	case status == http.StatusNotFound:
		return apiError{Code: "SF-API-4040", Kind: "NotFound", Message: msg}
	case status == http.StatusMethodNotAllowed:
		return apiError{Code: "SF-API-4050", Kind: "MethodNotAllowed", Message: msg}
	case status == http.StatusRequestEntityTooLarge:
		return apiError{Code: "SF-API-4130", Kind: string(pipeline.KindBadRequest), Message: msg}
	default:
		return apiError{Code: "SF-API-4000", Kind: "BadRequest", Message: msg}
	}
}
