// Package widget is the registry of page-builder widgets and their control schemas.
package widget

import (
	"context"
	"io"

	"wslider/internal/domain/models"
)

type ControlType string

const (
	ControlText     ControlType = "text"
	ControlTextarea ControlType = "textarea"
	ControlWysiwyg  ControlType = "wysiwyg"
)

// Control is one editable widget setting.
type Control struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	Type    ControlType `json:"type"`
	Default string      `json:"default"`
}

// RenderContext is everything a frontend render needs besides the widget settings.
type RenderContext struct {
	PostID   int64
	Source   *models.ResolvedSliderConfig
	Color    string
	Settings map[string]string
}

type Widget interface {
	Name() string
	Title() string
	Icon() string
	Categories() []string
	StyleDepends() []string
	ScriptDepends() []string
	Controls() []Control
	Render(ctx context.Context, w io.Writer, rc RenderContext) error
	RenderPreview(w io.Writer, settings map[string]string) error
}
