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

// ApplicationController handles HTTP requests for role applications
type ApplicationController struct {
	repository repository.ApplicationRepositoryInterface
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(repo repository.ApplicationRepositoryInterface) *ApplicationController {
	return &ApplicationController{
		repository: repo,
	}
}

// Create handles POST /applications
func (c *ApplicationController) Create(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 CreateApplication: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	app, err := c.repository.Create(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// ListMine handles GET /applications/me
func (c *ApplicationController) ListMine(w http.ResponseWriter, r *http.Request) {
	apps, err := c.repository.ListByUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// List handles GET /applications (admin). Filters by ?status=, defaulting
// to the pending review queue.
func (c *ApplicationController) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ApplicationStatusPending
	}

	apps, err := c.repository.ListByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// Review handles PUT /applications/{id} (admin)
func (c *ApplicationController) Review(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 ReviewApplication: Received %s request to %s", r.Method, r.URL.Path)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid application id")
		return
	}

	var req models.ReviewApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	app, err := c.repository.Review(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
