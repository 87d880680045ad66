package wslider_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wslider/internal/domain/models"
	"wslider/internal/metrics"
	"wslider/internal/widget"
	"wslider/internal/widget/wslider"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(t *testing.T) *models.ResolvedSliderConfig {
	t.Helper()

	cfg := models.NewSliderConfig()
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Red", Color: "#ff0000", Refs: []string{"r1", "r2"}}))
	require.NoError(t, cfg.Add(models.ColorEntry{Name: "Blue", Color: "#0000ff", Refs: []string{"b1", "gone"}}))

	return models.Resolve(cfg, func(ref string) (string, bool) {
		if ref == "gone" {
			return "", false
		}
		return "https://cdn.test/" + ref + ".jpg", true
	})
}

func render(t *testing.T, rc widget.RenderContext) string {
	t.Helper()

	w := wslider.New(wslider.Assets{StyleURL: "/static/css/w-slider.css", ScriptURL: "/static/js/w-slider.js"}, nil)

	var buf bytes.Buffer
	require.NoError(t, w.Render(context.Background(), &buf, rc))
	return buf.String()
}

func TestWidget_Definition(t *testing.T) {
	w := wslider.New(wslider.Assets{}, nil)

	assert.Equal(t, "w-slider", w.Name())
	assert.Equal(t, "w-slider", w.Title())
	assert.Equal(t, "fa fa-pencil", w.Icon())
	assert.Equal(t, []string{"general"}, w.Categories())
	assert.Equal(t, []string{"w-slider"}, w.StyleDepends())

	var names []string
	for _, c := range w.Controls() {
		names = append(names, c.Name)
		assert.Equal(t, c.Label, c.Default)
	}
	assert.Equal(t, []string{"title", "description", "content"}, names)

	reg := widget.NewRegistry(nil)
	require.NoError(t, reg.Register(w))
}

func TestWidget_RenderFirstColorByDefault(t *testing.T) {
	out := render(t, widget.RenderContext{PostID: 1, Source: source(t)})

	assert.Contains(t, out, `data-active-color="Red"`)
	assert.Contains(t, out, `url('https://cdn.test/r1.jpg')`)
	assert.Contains(t, out, `url('https://cdn.test/r2.jpg')`)
	assert.NotContains(t, out, `url('https://cdn.test/b1.jpg')`)
	assert.Equal(t, 1, strings.Count(out, "color-button active"))
	assert.Contains(t, out, `"image_urls":["https://cdn.test/b1.jpg"]`)
	assert.Contains(t, out, `"effect":"fade"`)
}

func TestWidget_RenderPreselectedColor(t *testing.T) {
	before := testutil.ToFloat64(metrics.ColorSwitchesTotal.WithLabelValues("selected"))

	out := render(t, widget.RenderContext{PostID: 1, Source: source(t), Color: "Blue"})

	assert.Contains(t, out, `data-active-color="Blue"`)
	assert.Contains(t, out, `url('https://cdn.test/b1.jpg')`)
	assert.NotContains(t, out, `url('https://cdn.test/r1.jpg')`)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ColorSwitchesTotal.WithLabelValues("selected")))
}

func TestWidget_RenderUnknownColorIsIgnored(t *testing.T) {
	before := testutil.ToFloat64(metrics.ColorSwitchesTotal.WithLabelValues("ignored"))

	out := render(t, widget.RenderContext{PostID: 1, Source: source(t), Color: "Green"})

	assert.Contains(t, out, `data-active-color="Red"`)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ColorSwitchesTotal.WithLabelValues("ignored")))
}

func TestWidget_RenderEmpty(t *testing.T) {
	out := render(t, widget.RenderContext{PostID: 1})

	assert.Contains(t, out, `data-active-color=""`)
	assert.NotContains(t, out, "swiper-slide")
	assert.NotContains(t, out, "color-button")
	assert.Contains(t, out, "window.wsliderSource = {};")
}

func TestWidget_RenderEscapesNames(t *testing.T) {
	out := render(t, widget.RenderContext{PostID: 1, Source: source(t), Settings: map[string]string{"title": `"><script>`}})

	assert.NotContains(t, out, `"><script>`)
}

func TestWidget_RenderPreview(t *testing.T) {
	w := wslider.New(wslider.Assets{}, []string{"https://placehold.co/1.png", "https://placehold.co/2.png"})

	var buf bytes.Buffer
	require.NoError(t, w.RenderPreview(&buf, map[string]string{"title": "Preview"}))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, `class="swiper-slide"`))
	assert.Contains(t, out, "w-slider-pagination")
	assert.Contains(t, out, "w-slider-button-next")
	assert.Contains(t, out, `aria-label="Preview"`)
}
