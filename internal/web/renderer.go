// Package web holds the server-rendered admin and frontend pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"path"

	"wslider/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

const layoutName = "layout.html"

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the css/js assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateRenderer реализует echo.Renderer. Каждая страница парсится вместе с layout.html.
type TemplateRenderer struct {
	log   *slog.Logger
	pages map[string]*template.Template
}

func NewTemplateRenderer(log *slog.Logger, funcMap template.FuncMap) (*TemplateRenderer, error) {
	const op = "web.NewTemplateRenderer"

	layout, err := template.New(layoutName).Funcs(funcMap).ParseFS(templatesFS, "templates/"+layoutName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := path.Base(file)
		if name == layoutName {
			continue
		}

		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		page, err := clone.ParseFS(templatesFS, file)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, name, err)
		}
		pages[name] = page
	}

	return &TemplateRenderer{
		log:   log,
		pages: pages,
	}, nil
}

// Render реализует метод интерфейса echo.Renderer.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := t.pages[name]
	if !ok {
		t.log.Error("template not found", slog.String("template", name))
		return fmt.Errorf("template %s not found", name)
	}

	if err := page.ExecuteTemplate(w, layoutName, data); err != nil {
		t.log.Error("failed to execute template", slog.String("template", name), sl.Err(err))
		return err
	}

	return nil
}
