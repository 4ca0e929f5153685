package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles requests against the caller's session cart.
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

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), s.CartID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.AddItem(r.Context(), s.CartID, req.ProductID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateItem handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateCartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.UpdateItem(r.Context(), s.CartID, productID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.service.RemoveItem(r.Context(), s.CartID, productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), s.CartID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
