package controller

import (
	"net/http"
	"strconv"

	"vendor-collective/repository"
)

// AdminController handles HTTP requests for platform administration
type AdminController struct {
	repository repository.ProfileRepositoryInterface
}

// NewAdminController creates a new AdminController
func NewAdminController(repo repository.ProfileRepositoryInterface) *AdminController {
	return &AdminController{
		repository: repo,
	}
}

// ListUsers handles GET /admin/users with ?page=&limit=&role=
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, err := c.repository.ListUsers(r.Context(), page, limit, q.Get("role"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
