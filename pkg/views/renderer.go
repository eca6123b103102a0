// Package views renders the catalog's HTML pages. Every page template is
// parsed together with layout.html and executed through its "layout"
// definition.
package views

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templateFS embed.FS

// Data is the bag of named values handed to a view.
type Data map[string]interface{}

type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	// Form input is stored HTML-escaped; undo that so html/template escapes
	// it exactly once.
	"unescape": html.UnescapeString,
	"statuses": func() []string { return models.BookInstanceStatuses },
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, page)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse view %s", name)
		}
		templates[name] = t
	}

	return &Renderer{templates}, nil
}

// Render implements echo.Renderer. The page is rendered into a buffer first
// so a template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return errors.Errorf("view %q does not exist", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return errors.WithStack(err)
	}

	_, err := buf.WriteTo(w)
	return errors.WithStack(err)
}
