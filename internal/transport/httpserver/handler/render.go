package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"expenses-app-go/pkg/logger"
)

const layoutFile = "templates/layout.html"

var pages = []string{"index", "add", "edit", "report", "categories", "error"}

// Views holds one parsed template set per page, each combined with the layout.
type Views struct {
	pages map[string]*template.Template
}

func LoadViews(source fs.FS) (*Views, error) {
	views := &Views{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.ParseFS(source, layoutFile, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", page, err)
		}
		views.pages[page] = tmpl
	}
	return views, nil
}

// render executes into a buffer first so a template failure never leaves a
// half-written page behind.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := h.views.pages[page]
	if !ok {
		logger.FromContext(r.Context(), h.log).Error("render: unknown view", "view", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(r.Context(), h.log).InternalError("render: execute failed", err, "view", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorView struct {
	Status     int
	StatusText string
	Message    string
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", errorView{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	})
}
