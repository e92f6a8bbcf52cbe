package handler

import (
	"encoding/json"
	"net/http"

	"pizza-shop/internal/middleware"
	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login sessions and passwords.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

type authResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token,omitempty"`
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Message: "Registration successful", User: user})
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: user, Token: token})
}

// Logout handles POST /auth/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// ChangePassword handles PUT /auth/change-password requests.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}
