package handler

import (
	"encoding/json"
	"net/http"

	"pizza-shop/internal/middleware"
	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles user account HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

type userResponse struct {
	User interface{} `json:"user"`
}

type usersResponse struct {
	Users []model.User `json:"users"`
}

// List handles GET /users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

// Get handles GET /users/{id} requests. Owners and admins get the full
// record; any other authenticated user gets the public projection.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, full, err := h.service.Get(r.Context(), id, requester)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if full {
		writeJSON(w, http.StatusOK, userResponse{User: user})
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user.PublicView()})
}

// Patch handles PATCH /users/{id} requests.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var patch service.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	user, err := h.service.Patch(r.Context(), id, requester, patch)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Delete handles DELETE /users/{id} requests.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
