package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 4 << 20

// ProductHandler handles catalog HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

type productResponse struct {
	Product *model.Product `json:"product"`
}

type productsResponse struct {
	Products []model.Product `json:"products"`
}

// parseProductForm parses the multipart (or urlencoded) form and returns
// the uploaded image header, if any.
func parseProductForm(r *http.Request) (*multipart.FileHeader, error) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "The request body is invalid")
	}

	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, model.NewDomainError(model.ErrCodeValidation, "The price is invalid")
	}
	return price, nil
}

// List handles GET /products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, productsResponse{Products: products})
}

// Get handles GET /products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: product})
}

// Create handles POST /products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	image, err := parseProductForm(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	input := service.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
	}
	if raw := r.FormValue("price"); raw != "" {
		input.Price, err = parsePrice(raw)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
	}

	product, err := h.service.Create(r.Context(), input, image)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{Product: product})
}

// Update handles PUT /products/{id} requests: a full replace.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	image, err := parseProductForm(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	input := service.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
	}
	if raw := r.FormValue("price"); raw != "" {
		input.Price, err = parsePrice(raw)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
	}

	product, err := h.service.Update(r.Context(), id, input, image)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: product})
}

// Patch handles PATCH /products/{id} requests: only supplied form fields
// change, and the image only when a new one is uploaded.
func (h *ProductHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	image, err := parseProductForm(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var patch service.ProductPatch
	if value, ok := formValue(r, "name"); ok {
		patch.Name = &value
	}
	if value, ok := formValue(r, "description"); ok {
		patch.Description = &value
	}
	if value, ok := formValue(r, "type"); ok {
		patch.Type = &value
	}
	if raw, ok := formValue(r, "price"); ok {
		price, err := parsePrice(raw)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
		patch.Price = &price
	}

	product, err := h.service.Patch(r.Context(), id, patch, image)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: product})
}

// Delete handles DELETE /products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: product})
}

// formValue reports whether the field was supplied at all, so PATCH can
// tell an absent field from an empty one.
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.Form[key]
	if !ok && r.MultipartForm != nil {
		values, ok = r.MultipartForm.Value[key]
	}
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
