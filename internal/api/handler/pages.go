package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/octofit/dashboard/internal/api/middleware"
	"github.com/octofit/dashboard/internal/dashboard"
	"github.com/octofit/dashboard/internal/editflow"
	"github.com/octofit/dashboard/internal/remotelist"
)

// PageHandler serves the HTML dashboard.
type PageHandler struct {
	views    ViewService
	renderer *renderer
}

// NewPageHandler creates a PageHandler. It fails only if the embedded
// templates do not parse.
func NewPageHandler(views ViewService) (*PageHandler, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &PageHandler{views: views, renderer: rd}, nil
}

type notFoundPage struct {
	layoutData
	Message string
}

type viewPage struct {
	layoutData
	ViewID      string
	Def         dashboard.Definition
	Loading     bool
	Failed      bool
	Err         string
	Rows        []dashboard.Row
	Edit        editflow.State
	TeamOptions []dashboard.TeamOption
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, pageHome, newLayout(r, "Home"))
}

// Mount handles GET /{resource}: every navigation mounts a fresh view.
func (h *PageHandler) Mount(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	v, err := h.views.Mount(r.Context(), resource)
	if err != nil {
		if isNotFound(err) {
			h.notFound(w, r, "there is no "+resource+" view")
			return
		}
		slog.Error("failed to mount view", "resource", resource, "error", err, "requestId", middleware.GetRequestID(r.Context()))
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, viewPath(v.ID), http.StatusSeeOther)
}

// Show handles GET /views/{id}. While the list is loading or a save is in
// flight the page refreshes itself every second.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snap := v.List.Snapshot()
	page := viewPage{
		layoutData: newLayout(r, v.Def.Title),
		ViewID:     v.ID,
		Def:        v.Def,
	}

	switch snap.Status {
	case remotelist.StatusLoading:
		page.Loading = true
		page.Refresh = true
	case remotelist.StatusFailed:
		page.Failed = true
		page.Err = snap.Err
	default:
		page.Rows = v.Def.Rows(snap.Records)
		if v.Edit != nil {
			page.Edit = v.Edit.State()
			page.TeamOptions = v.TeamOptions()
			page.Refresh = page.Edit.Saving
		}
	}

	h.renderer.render(w, http.StatusOK, pageView, page)
}

// OpenEdit handles POST /views/{id}/edit with form field user_id.
func (h *PageHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if v.Edit == nil {
		http.Error(w, "this view is not editable", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	userID := r.PostFormValue("user_id")
	rec, found := v.List.Find(userID)
	if !found {
		http.Error(w, "user not found in this view", http.StatusNotFound)
		return
	}

	v.Edit.OpenEdit(rec)
	http.Redirect(w, r, viewPath(v.ID), http.StatusSeeOther)
}

// SubmitDraft handles POST /views/{id}/draft. Fields present in the form are
// applied to the draft, then action=cancel discards it and anything else saves.
func (h *PageHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if v.Edit == nil {
		http.Error(w, "this view is not editable", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if r.PostFormValue("action") == "cancel" {
		v.Edit.Cancel()
		http.Redirect(w, r, viewPath(v.ID), http.StatusSeeOther)
		return
	}

	for _, field := range []string{editflow.FieldName, editflow.FieldEmail, editflow.FieldTeamID} {
		values, present := r.PostForm[field]
		if !present {
			continue
		}
		if err := v.Edit.ChangeField(field, values[0]); err != nil {
			if errors.Is(err, editflow.ErrNoDraft) {
				http.Redirect(w, r, viewPath(v.ID), http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	// The save outlives the request like any other backend call of a view.
	if err := v.Edit.Save(context.WithoutCancel(r.Context())); err != nil {
		slog.Info("user save rejected", "viewId", v.ID, "error", err, "requestId", middleware.GetRequestID(r.Context()))
	}
	http.Redirect(w, r, viewPath(v.ID), http.StatusSeeOther)
}

func (h *PageHandler) lookup(w http.ResponseWriter, r *http.Request) (*dashboard.View, bool) {
	v, err := h.views.View(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "this view has expired")
		return nil, false
	}
	return v, true
}

func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.renderer.render(w, http.StatusNotFound, pageNotFound, notFoundPage{
		layoutData: newLayout(r, "Not found"),
		Message:    msg,
	})
}

func viewPath(id string) string {
	return "/views/" + id
}
