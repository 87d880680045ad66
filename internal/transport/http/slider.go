package http

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"wslider/internal/transport/http/dto/response"
	"wslider/internal/web"
	"wslider/internal/widget"
	"wslider/internal/widget/wslider"

	"github.com/labstack/echo/v4"
)

// GetSlider godoc
// @Summary Слайдер автомобиля
// @Description Цвета автомобиля с URL изображений. Отсутствующие вложения пропускаются.
// @Tags slider
// @Produce json
// @Param post_id path int true "ID записи"
// @Success 200 {object} response.Response "Цвета в порядке добавления: {name: {color, images, image_urls}}"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/cars/{post_id}/slider [get]
func (r *Routers) GetSlider(c echo.Context) error {
	const op = "http.routers.GetSlider"

	log := r.log.With(
		slog.String("op", op),
		slog.String("post_id", c.Param("post_id")),
	)

	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	resolved, err := r.SliderService.Resolve(c.Request().Context(), postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resolved))
}

// SliderPage renders the w-slider widget of a car. ?color= preselects a color,
// unknown names fall back to the first one.
func (r *Routers) SliderPage(c echo.Context) error {
	const op = "http.routers.SliderPage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("post_id", c.Param("post_id")),
	)

	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}

	ctx := c.Request().Context()

	post, err := r.SliderService.Post(ctx, postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	resolved, err := r.SliderService.Resolve(ctx, postID)
	if err != nil {
		return r.fail(c, log, err)
	}

	reg, ok := r.Widgets.Get(wslider.Name)
	if !ok {
		log.Error("widget is not registered", slog.String("widget", wslider.Name))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	var buf bytes.Buffer
	err = reg.Widget.Render(ctx, &buf, widget.RenderContext{
		PostID:   post.ID,
		Source:   resolved,
		Color:    c.QueryParam("color"),
		Settings: reg.Settings,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.Render(http.StatusOK, web.PageSlider, web.SliderPage{
		Post:   post,
		Widget: template.HTML(buf.String()),
	})
}
