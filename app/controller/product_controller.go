package controller

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/repository"
)

// ProductController handles HTTP requests for products and deals
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// Create handles POST /products
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeBadRequest(w, "name cannot be empty")
		return
	}
	if strings.TrimSpace(req.Unit) == "" {
		writeBadRequest(w, "unit cannot be empty")
		return
	}
	if req.BasePrice <= 0 {
		writeBadRequest(w, "basePrice must be greater than 0")
		return
	}

	product, err := c.repository.Create(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// ListAvailable handles GET /products
func (c *ProductController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	products, err := c.repository.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// ListMine handles GET /products/mine
func (c *ProductController) ListMine(w http.ResponseWriter, r *http.Request) {
	products, err := c.repository.ListBySupplier(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Update handles PUT /products/{id}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid product id")
		return
	}

	var req models.UpdateProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	product, err := c.repository.Update(r.Context(), id, middleware.UserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid product id")
		return
	}

	if err := c.repository.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed from catalog"})
}

// CreateDeal handles POST /deals/products/{productID}
func (c *ProductController) CreateDeal(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeBadRequest(w, "Invalid product id")
		return
	}

	var req models.CreateDealRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	deal, err := c.repository.CreateDeal(r.Context(), productID, middleware.UserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}

// UpdateDeal handles PUT /deals/{id}
func (c *ProductController) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid deal id")
		return
	}

	var req models.UpdateDealRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	deal, err := c.repository.UpdateDeal(r.Context(), id, middleware.UserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// DeleteDeal handles DELETE /deals/{id}
func (c *ProductController) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid deal id")
		return
	}

	if err := c.repository.DeleteDeal(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deal removed"})
}
