package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MessageResponse is the body of plain message and error responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// writeError maps a service error to its HTTP status and message body.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("handler error")
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}

	status := statusFor(domainErr.Code)
	logger.Debug().Str("code", domainErr.Code).Int("status", status).Str("message", domainErr.Message).Msg("request rejected")
	writeJSON(w, status, MessageResponse{Message: domainErr.Message})
}

// statusFor translates a domain error code into an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidQuantity, model.ErrCodeEmptyCart:
		return http.StatusUnprocessableEntity
	case model.ErrCodeUserNotFound, model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound, model.ErrCodeProductNotInCart:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised, model.ErrCodeWrongPassword:
		return http.StatusUnauthorized
	case model.ErrCodeMissingField, model.ErrCodeValidation,
		model.ErrCodeConflict, model.ErrCodeQuantityTooLarge, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} path value as a uuid.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, model.NewDomainError(model.ErrCodeValidation, "The id is invalid")
	}
	return id, nil
}
