package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/repository"
)

// CartController handles HTTP requests for the vendor cart
type CartController struct {
	repository repository.CartRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(repo repository.CartRepositoryInterface) *CartController {
	return &CartController{
		repository: repo,
	}
}

// AddItem handles POST /cart/items
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Quantity <= 0 {
		writeBadRequest(w, "quantity must be greater than 0")
		return
	}

	item, err := c.repository.AddItem(r.Context(), middleware.UserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GetCart handles GET /cart/me
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.repository.GetCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateQuantity handles PUT /cart/items/{id}
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid cart item id")
		return
	}

	var req models.UpdateCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Quantity <= 0 {
		writeBadRequest(w, "quantity must be greater than 0")
		return
	}

	item, err := c.repository.UpdateQuantity(r.Context(), itemID, middleware.UserID(r.Context()), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid cart item id")
		return
	}

	if err := c.repository.RemoveItem(r.Context(), itemID, middleware.UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
