// Package render is the human-readable view layer. It consumes nothing but
// the RenderModel projection handed over by the query service.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"

	"github.com/reporthub/backend/internal/model"
)

//go:embed views/*.html
var viewsFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(viewsFS, "views/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "render: failed to parse view templates")
	}

	return &Renderer{
		templates: templates,
	}, nil
}

// Report renders the detail page for one report.
func (r *Renderer) Report(rm *model.RenderModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "report.html", rm); err != nil {
		return nil, errors.Wrap(err, "render: failed to render report view")
	}
	return buf.Bytes(), nil
}
