package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// Page carries the fields every template expects. Handlers embed it in
// their page-specific data so helpers and navigation state arrive through
// the render call instead of ambient globals.
type Page struct {
	Title       string
	CurrentPath string
}

// Renderer implements echo.Renderer over html/template. Each page
// template is parsed together with the shared layout into its own set, so
// pages can redefine the content block without clashing.
type Renderer struct {
	templates map[string]*template.Template
}

// FuncMap exposes the view helpers to templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"text":          Text,
		"formatDate":    FormatDate,
		"truncate":      TruncateText,
		"priorityClass": PriorityClass,
		"isPastDue":     IsPastDue,
		"isDueToday":    IsDueToday,
	}
}

// NewRenderer parses the layout plus every page template under dir.
// Templates are addressed by their file name without extension, e.g.
// "tasks_index".
func NewRenderer(dir string) (*Renderer, error) {
	layout := filepath.Join(dir, "layout.html")

	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		if name == "layout" {
			continue
		}

		tmpl, err := template.New("layout.html").Funcs(FuncMap()).ParseFiles(layout, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	return &Renderer{templates: templates}, nil
}

// Render renders the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
