package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/octofit/dashboard/internal/api/middleware"
	"github.com/octofit/dashboard/internal/api/response"
	"github.com/octofit/dashboard/internal/collection"
	"github.com/octofit/dashboard/internal/dashboard"
	"github.com/octofit/dashboard/internal/editflow"
	"github.com/octofit/dashboard/internal/remotelist"
)

// ViewAPIHandler serves the state of mounted views as JSON.
type ViewAPIHandler struct {
	views ViewService
}

// NewViewAPIHandler creates a ViewAPIHandler.
func NewViewAPIHandler(views ViewService) *ViewAPIHandler {
	return &ViewAPIHandler{views: views}
}

type viewResponse struct {
	ID        string                 `json:"id"`
	Resource  string                 `json:"resource"`
	Endpoint  string                 `json:"endpoint"`
	Status    remotelist.Status      `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Records   []collection.Record    `json:"records"`
	Edit      *editflow.State        `json:"edit,omitempty"`
	Teams     []dashboard.TeamOption `json:"teams,omitempty"`
	MountedAt string                 `json:"mountedAt"`
}

func toViewResponse(v *dashboard.View) viewResponse {
	snap := v.List.Snapshot()
	resp := viewResponse{
		ID:        v.ID,
		Resource:  v.Def.Resource,
		Endpoint:  v.List.Endpoint(),
		Status:    snap.Status,
		Error:     snap.Err,
		Records:   snap.Records,
		MountedAt: v.MountedAt.UTC().Format(time.RFC3339),
	}
	if resp.Records == nil {
		resp.Records = []collection.Record{}
	}
	if v.Edit != nil {
		st := v.Edit.State()
		resp.Edit = &st
		resp.Teams = v.TeamOptions()
	}
	return resp
}

// Get handles GET /api/views/{id}.
func (h *ViewAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v, err := h.views.View(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusNotFound, response.CodeNotFound, "View not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, toViewResponse(v), requestID)
}
