package api

import (
	"encoding/json"
	"net/http"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/intake/validate"
)

type errorBody struct {
	Error             *errors.StandardError `json:"error"`
	Errors            validate.FieldErrors  `json:"errors,omitempty"`
	FirstInvalidField string                `json:"firstInvalidField,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidAction:
		return http.StatusBadRequest
	case errors.ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeDraftNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDraftStoreFailed, errors.ErrCodeIdentityUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error, fieldErrors validate.FieldErrors) {
	stdErr := errors.Normalize(err)
	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", map[string]interface{}{
			"code":     string(stdErr.Code),
			"category": errors.GetErrorCategory(stdErr.Code),
			"error":    err.Error(),
		})
	}
	writeJSON(w, status, errorBody{
		Error:             stdErr,
		Errors:            fieldErrors,
		FirstInvalidField: fieldErrors.First(),
	})
}
