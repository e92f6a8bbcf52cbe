package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pizza-shop/internal/middleware"
	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type cartResponse struct {
	Cart model.Cart `json:"cart"`
}

// quantityFrom reads the optional quantity from the request body,
// defaulting to 1 when the body or the field is absent.
func quantityFrom(r *http.Request) (int, error) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return 1, nil
		}
		return 0, model.NewDomainError(model.ErrCodeInvalidJSON, "The request body is invalid")
	}
	if req.Quantity == nil {
		return 1, nil
	}
	return *req.Quantity, nil
}

// Get handles GET /cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

// AddProduct handles POST /cart/product/{id} requests.
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	productID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	quantity, err := quantityFrom(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.AddProduct(r.Context(), user.ID, productID, quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

// RemoveProduct handles DELETE /cart/product/{id} requests.
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorised, h.logger)
		return
	}

	productID, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	quantity, err := quantityFrom(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.RemoveProduct(r.Context(), user.ID, productID, quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}
