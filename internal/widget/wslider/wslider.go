// Package wslider is the color-switchable car slider widget.
package wslider

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"wslider/internal/domain/carousel"
	"wslider/internal/domain/models"
	"wslider/internal/metrics"
	"wslider/internal/widget"
)

const Name = "w-slider"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Assets are the stylesheet and script URLs the rendered markup depends on.
type Assets struct {
	StyleURL  string
	ScriptURL string
	SwiperCSS string
	SwiperJS  string
}

type Widget struct {
	assets        Assets
	previewSlides []string
	options       carousel.Options
}

func New(assets Assets, previewSlides []string) *Widget {
	return &Widget{
		assets:        assets,
		previewSlides: previewSlides,
		options:       carousel.DefaultOptions(),
	}
}

func (w *Widget) Name() string            { return Name }
func (w *Widget) Title() string           { return "w-slider" }
func (w *Widget) Icon() string            { return "fa fa-pencil" }
func (w *Widget) Categories() []string    { return []string{"general"} }
func (w *Widget) StyleDepends() []string  { return []string{Name} }
func (w *Widget) ScriptDepends() []string { return []string{Name} }

func (w *Widget) Controls() []widget.Control {
	return []widget.Control{
		{Name: "title", Label: "Title", Type: widget.ControlText, Default: "Title"},
		{Name: "description", Label: "Description", Type: widget.ControlTextarea, Default: "Description"},
		{Name: "content", Label: "Content", Type: widget.ControlWysiwyg, Default: "Content"},
	}
}

type renderData struct {
	Container string
	Title     string
	Assets    Assets
	Source    *models.ResolvedSliderConfig
	Options   carousel.Options
	Active    string
	Slides    []carousel.Slide
	Swatches  []carousel.Swatch
}

// Render writes the slider for one post. The initial slide set is the active color's,
// rc.Color preselects a color and is ignored when unknown.
func (w *Widget) Render(_ context.Context, out io.Writer, rc widget.RenderContext) error {
	const op = "wslider.Render"

	track := carousel.NewTrack()
	if err := track.Init(carousel.DefaultContainer, w.options); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	source := rc.Source
	if source == nil {
		source = models.Resolve(nil, nil)
	}

	switcher := carousel.NewSwitcher(source, track)
	if rc.Color != "" {
		if switcher.SelectColor(rc.Color) {
			metrics.ColorSwitchesTotal.WithLabelValues("selected").Inc()
		} else {
			metrics.ColorSwitchesTotal.WithLabelValues("ignored").Inc()
		}
	}
	active, _ := switcher.ActiveColor()

	data := renderData{
		Container: track.Container(),
		Title:     rc.Settings["title"],
		Assets:    w.assets,
		Source:    source,
		Options:   track.Options(),
		Active:    active,
		Slides:    track.Slides(),
		Swatches:  switcher.Swatches(),
	}

	if err := templates.ExecuteTemplate(out, "slider.html", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type previewData struct {
	Container string
	Title     string
	Assets    Assets
	Slides    []carousel.Slide
}

// RenderPreview writes the editor preview: the carousel shell with navigation,
// pagination and the configured sample slides.
func (w *Widget) RenderPreview(out io.Writer, settings map[string]string) error {
	const op = "wslider.RenderPreview"

	slides := make([]carousel.Slide, 0, len(w.previewSlides))
	for _, u := range w.previewSlides {
		slides = append(slides, carousel.Slide{URL: u})
	}

	data := previewData{
		Container: carousel.DefaultContainer,
		Title:     settings["title"],
		Assets:    w.assets,
		Slides:    slides,
	}

	if err := templates.ExecuteTemplate(out, "preview.html", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
