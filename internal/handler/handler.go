package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// errorStatusByCode maps domain error codes to HTTP status codes.
// Codes not listed here are business-rule violations and map to 400.
var errorStatusByCode = map[string]int{
	model.ErrCodeCustomerNotFound:      http.StatusNotFound,
	model.ErrCodeProductNotFound:       http.StatusNotFound,
	model.ErrCodeCategoryNotFound:      http.StatusNotFound,
	model.ErrCodeOrderNotFound:         http.StatusNotFound,
	model.ErrCodeDuplicateEmail:        http.StatusConflict,
	model.ErrCodeDuplicateProductName:  http.StatusConflict,
	model.ErrCodeDuplicateCategoryName: http.StatusConflict,
	model.ErrCodeUnauthorised:          http.StatusUnauthorized,
	model.ErrCodeInternalError:         http.StatusInternalServerError,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing useful left to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error to an HTTP response. Domain
// error messages pass through verbatim; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := errorStatusByCode[domainErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// pathID parses the {id} path value as a UUID. It writes a 400 response
// and returns false when the value is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid id format", logger)
		return uuid.Nil, false
	}
	return id, true
}
