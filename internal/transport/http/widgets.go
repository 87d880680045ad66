package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"wslider/internal/transport/http/dto"
	"wslider/internal/transport/http/dto/response"
	"wslider/internal/web"
	"wslider/internal/widget"

	"github.com/labstack/echo/v4"
)

// ListWidgets godoc
// @Summary Зарегистрированные виджеты
// @Description Виджеты с настройками и JSON Schema их контролов
// @Tags widgets
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.WidgetResponse}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/widgets [get]
func (r *Routers) ListWidgets(c echo.Context) error {
	const op = "http.routers.ListWidgets"

	log := r.log.With(
		slog.String("op", op),
	)

	regs := r.Widgets.List()
	out := make([]dto.WidgetResponse, 0, len(regs))
	for _, reg := range regs {
		schema, err := json.Marshal(reg.Schema)
		if err != nil {
			return r.fail(c, log, err)
		}

		w := reg.Widget
		out = append(out, dto.WidgetResponse{
			Name:          w.Name(),
			Title:         w.Title(),
			Icon:          w.Icon(),
			Categories:    w.Categories(),
			StyleDepends:  w.StyleDepends(),
			ScriptDepends: w.ScriptDepends(),
			Settings:      reg.Settings,
			Schema:        schema,
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(out))
}

// WidgetPreview renders the editor preview of a widget. Query parameters named
// after controls override the configured settings.
func (r *Routers) WidgetPreview(c echo.Context) error {
	const op = "http.routers.WidgetPreview"

	log := r.log.With(
		slog.String("op", op),
		slog.String("widget", c.Param("name")),
	)

	reg, ok := r.Widgets.Get(c.Param("name"))
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("widget_not_found", widget.ErrUnknownWidget.Error()))
	}

	overrides := make(map[string]string)
	for _, ctrl := range reg.Widget.Controls() {
		if v := c.QueryParam(ctrl.Name); v != "" {
			overrides[ctrl.Name] = v
		}
	}

	settings, err := reg.Merge(overrides)
	if err != nil {
		if errors.Is(err, widget.ErrSettingsInvalid) {
			return r.invalidRequest(c, err)
		}
		return r.fail(c, log, err)
	}

	var buf bytes.Buffer
	if err := reg.Widget.RenderPreview(&buf, settings); err != nil {
		return r.fail(c, log, err)
	}

	return c.Render(http.StatusOK, web.PagePreview, web.PreviewPage{
		Title:  reg.Widget.Title(),
		Widget: template.HTML(buf.String()),
	})
}
