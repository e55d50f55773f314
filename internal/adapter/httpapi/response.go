package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/babacardot/suparaise-sub001/internal/application/service"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/schema"
)

// Response is the envelope of every JSON body this API writes.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Error: &Error{Code: code, Message: message, Details: details},
	})
}

// writeDomainError maps sentinel errors to status codes. Anything unknown is
// a 500 and its text is not echoed to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	var schemaErr *schema.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &schemaErr):
		writeError(w, http.StatusBadRequest, CodeValidation, "smart_data does not match the expected shape", schemaErr.Errors)
	case errors.As(err, &fieldErrs):
		writeError(w, http.StatusBadRequest, CodeValidation, "request validation failed", fieldErrors(fieldErrs))
	case errors.Is(err, entity.ErrInvalidSmartData):
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, entity.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrNoSpecialist):
		writeError(w, http.StatusInternalServerError, CodeInternal, "specialist registry is misconfigured", nil)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
	}
}

func fieldErrors(errs validator.ValidationErrors) []schema.FieldError {
	out := make([]schema.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, schema.FieldError{
			Field:   fe.Field(),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	return out
}
