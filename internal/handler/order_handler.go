package handler

import (
	"encoding/json"
	"net/http"

	"pizza-shop/internal/middleware"
	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

type orderResponse struct {
	Order *model.Order `json:"order"`
}

// Create handles POST /orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	var req struct {
		Phone   string        `json:"phone"`
		Address model.Address `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), user.ID, req.Phone, req.Address)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, orderResponse{Order: order})
}

// Get handles GET /orders/{id} requests.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), orderID, user)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

// Update handles PUT /orders/{id} requests. The stored order is replaced
// wholesale: omitted request fields overwrite with their zero values.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var input service.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	order, err := h.service.Update(r.Context(), orderID, input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

// Patch handles PATCH /orders/{id} requests. Only supplied fields change.
func (h *OrderHandler) Patch(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var patch service.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid"), h.logger)
		return
	}

	order, err := h.service.Patch(r.Context(), orderID, patch)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

// Delete handles DELETE /orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Delete(r.Context(), orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}
