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

// AgentRouteController handles HTTP requests for delivery agents
type AgentRouteController struct {
	repository repository.RouteRepositoryInterface
}

// NewAgentRouteController creates a new AgentRouteController
func NewAgentRouteController(repo repository.RouteRepositoryInterface) *AgentRouteController {
	return &AgentRouteController{
		repository: repo,
	}
}

// TodayRoute handles GET /agent-routes/me/today
func (c *AgentRouteController) TodayRoute(w http.ResponseWriter, r *http.Request) {
	route, err := c.repository.GetTodayRouteForAgent(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

// StopManifest handles GET /agent-routes/stops/{id}/manifest
func (c *AgentRouteController) StopManifest(w http.ResponseWriter, r *http.Request) {
	stopID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid stop id")
		return
	}

	manifest, err := c.repository.GetStopManifest(r.Context(), stopID, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

// UpdateStopStatus handles PUT /agent-routes/stops/{id}/status
func (c *AgentRouteController) UpdateStopStatus(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 UpdateStopStatus: Received %s request to %s", r.Method, r.URL.Path)

	stopID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "Invalid stop id")
		return
	}

	var req models.UpdateStopStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	switch req.Status {
	case models.StopStatusInProgress, models.StopStatusCompleted, models.StopStatusFailed:
	default:
		writeBadRequest(w, "status must be in_progress, completed or failed")
		return
	}

	stop, err := c.repository.UpdateStopStatus(r.Context(), stopID, middleware.UserID(r.Context()), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stop)
}

// Progress handles GET /agent-routes/me/progress
func (c *AgentRouteController) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := c.repository.GetProgress(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
