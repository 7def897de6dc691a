package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/octofit/dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	pageHome     = "home"
	pageView     = "view"
	pageNotFound = "notfound"
)

// renderer holds one template set per page, each sharing the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pageView, pageNotFound} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// layoutData is what every page needs from the layout.
type layoutData struct {
	Title     string
	Refresh   bool
	Nav       []dashboard.Definition
	CSRFField template.HTML
}

func newLayout(r *http.Request, title string) layoutData {
	return layoutData{
		Title:     title,
		Nav:       dashboard.Definitions(),
		CSRFField: csrf.TemplateField(r),
	}
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (rd *renderer) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := rd.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("failed to write page", "page", page, "error", err)
	}
}
