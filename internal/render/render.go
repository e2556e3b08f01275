// Package render turns outcome templates into HTML pages.
//
// Every page is parsed together with the shared layout. Catalog text is
// stored HTML-escaped, so templates print stored values through the escaped
// func instead of letting html/template escape them a second time.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var views embed.FS

//go:embed static
var static embed.FS

const layoutFile = "views/layout.html"

// Renderer implements echo.Renderer over the embedded views.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the layout.
func New() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(Funcs()).ParseFS(views, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(views, "views/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}

		page, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(views, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		r.pages[name] = page
	}

	return r, nil
}

// Render executes the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Static is the stylesheet tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs is the sprig HTML func map plus the catalog helpers.
func Funcs() template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["escaped"] = escaped
	funcs["formatDate"] = formatDate
	funcs["inputDate"] = inputDate
	funcs["listURL"] = func(kind string) string { return model.ListURL(model.Kind(kind)) }
	return funcs
}

// escaped marks an already escaped stored value as safe HTML.
func escaped(s string) template.HTML {
	return template.HTML(s)
}

func formatDate(v any) string {
	return model.FormatDate(asTime(v))
}

func inputDate(v any) string {
	return model.InputDate(asTime(v))
}

func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	default:
		return nil
	}
}
