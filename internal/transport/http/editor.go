package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/metrics"
	editorsvc "wslider/internal/services/editor_service"
	slidersvc "wslider/internal/services/slider_service"
	"wslider/internal/storage"
	"wslider/internal/transport/http/dto"
	"wslider/internal/transport/http/dto/response"
	"wslider/internal/web"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultPerPage = 20

// CarsPage lists car posts in the admin.
func (r *Routers) CarsPage(c echo.Context) error {
	const op = "http.routers.CarsPage"

	log := r.log.With(
		slog.String("op", op),
	)

	page, _ := strconv.Atoi(c.QueryParam("page"))

	posts, _, err := r.SliderService.Cars(c.Request().Context(), page, defaultPerPage)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.Render(http.StatusOK, web.PagePosts, web.PostsPage{Posts: posts})
}

// EditorPage renders the car edit screen with the slider meta box. ?draft= reopens
// a running draft, otherwise a new one starts from the stored config.
func (r *Routers) EditorPage(c echo.Context) error {
	const op = "http.routers.EditorPage"

	post, _ := CurrentPost(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("post_id", post.ID),
	)

	if !post.HasSlider() {
		return r.fail(c, log, slidersvc.ErrNotSliderPost)
	}

	ctx := c.Request().Context()

	var (
		view *editorsvc.View
		err  error
	)
	if draftID, parseErr := uuid.Parse(c.QueryParam("draft")); parseErr == nil {
		view, err = r.EditorService.Draft(ctx, post.ID, draftID)
		if errors.Is(err, storage.ErrDraftNotFound) {
			log.Info("draft expired, opening a new one")
			view, err = r.EditorService.Open(ctx, post.ID)
		}
	} else {
		view, err = r.EditorService.Open(ctx, post.ID)
	}
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.Render(http.StatusOK, web.PageEditor, web.EditorPage{
		CSRF:  csrfToken(c),
		Post:  post,
		View:  view,
		Saved: c.QueryParam("saved") == "1",
	})
}

// SubmitEditor godoc
// @Summary Сохранение слайдера
// @Description Сохраняет скрытое поле wslider-hash мета-бокса. Автосохранения и формы без поля пропускаются, некорректный JSON отклоняется без записи.
// @Tags editor
// @Accept x-www-form-urlencoded
// @Produce json
// @Param post_id path int true "ID записи"
// @Param wslider-hash formData string false "Конфигурация слайдера"
// @Param wslider_meta_box_nonce formData string true "CSRF токен"
// @Param wslider_draft_id formData string false "ID черновика редактора"
// @Param autosave formData string false "Признак автосохранения"
// @Success 303 "Сохранено, редирект на редактор"
// @Success 204 "Автосохранение или форма без wslider-hash, ничего не записано"
// @Failure 400 {object} response.ErrorResponse "Некорректная конфигурация"
// @Failure 403 {object} response.ErrorResponse "Нет прав на запись или неверный CSRF токен"
// @Failure 422 {object} response.ErrorResponse "Тип записи без слайдера"
// @Router /admin/cars/{post_id}/edit [post]
func (r *Routers) SubmitEditor(c echo.Context) error {
	const op = "http.routers.SubmitEditor"

	post, _ := CurrentPost(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("post_id", post.ID),
	)

	var input dto.SliderSubmitInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if input.Autosave != "" && input.Autosave != "0" {
		metrics.SliderSavesTotal.WithLabelValues("skipped").Inc()
		log.Debug("autosave ignored")

		return c.NoContent(http.StatusNoContent)
	}

	// без поля мета не трогаем
	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if _, ok := form[dto.SliderHashField]; !ok {
		metrics.SliderSavesTotal.WithLabelValues("skipped").Inc()
		log.Debug("submission without slider field ignored")

		return c.NoContent(http.StatusNoContent)
	}

	ctx := c.Request().Context()

	if err := r.SliderService.SaveSerialized(ctx, post.ID, input.Hash); err != nil {
		return r.fail(c, log, err)
	}

	if draftID, err := uuid.Parse(input.DraftID); err == nil {
		if err := r.EditorService.Discard(ctx, post.ID, draftID); err != nil {
			log.Warn("failed to discard draft", sl.Err(err))
		}
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/cars/%d/edit?saved=1", post.ID))
}

// OpenDraft godoc
// @Summary Новый черновик редактора
// @Description Открывает черновик из сохраненной конфигурации, с миниатюрами галерей
// @Tags editor
// @Produce json
// @Param post_id path int true "ID записи"
// @Success 201 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 403 {object} response.ErrorResponse "Нет прав на запись"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts [post]
func (r *Routers) OpenDraft(c echo.Context) error {
	const op = "http.routers.OpenDraft"

	post, _ := CurrentPost(c)
	log := r.log.With(slog.String("op", op), slog.Int64("post_id", post.ID))

	view, err := r.EditorService.Open(c.Request().Context(), post.ID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(draftResponse(view)))
}

// GetDraft godoc
// @Summary Черновик редактора
// @Tags editor
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 404 {object} response.ErrorResponse "Черновик не найден"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id} [get]
func (r *Routers) GetDraft(c echo.Context) error {
	return r.draftAction(c, "http.routers.GetDraft", func(postID int64, draftID uuid.UUID) (*editorsvc.View, error) {
		return r.EditorService.Draft(c.Request().Context(), postID, draftID)
	})
}

// AddColor godoc
// @Summary Добавить цвет
// @Description Новый цвет получает цвет по умолчанию и пустую галерею
// @Tags editor
// @Accept json
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Param request body dto.AddColorInput true "Имя цвета"
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 400 {object} response.ErrorResponse "Некорректное имя"
// @Failure 409 {object} response.ErrorResponse "Цвет уже существует"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id}/colors [post]
func (r *Routers) AddColor(c echo.Context) error {
	var input dto.AddColorInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(input); err != nil {
		return r.invalidRequest(c, err)
	}

	return r.draftAction(c, "http.routers.AddColor", func(postID int64, draftID uuid.UUID) (*editorsvc.View, error) {
		return r.EditorService.AddColor(c.Request().Context(), postID, draftID, input.Name)
	})
}

// RemoveColor godoc
// @Summary Удалить цвет
// @Description Удаление требует подтверждения ?confirm=true, иначе 428. Несуществующий цвет игнорируется.
// @Tags editor
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Param name path string true "Имя цвета"
// @Param confirm query bool true "Подтверждение"
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 428 {object} response.ErrorResponse "Нужно подтверждение"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id}/colors/{name} [delete]
func (r *Routers) RemoveColor(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	return r.colorAction(c, "http.routers.RemoveColor", func(postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
		return r.EditorService.RemoveColor(c.Request().Context(), postID, draftID, name, confirmed)
	})
}

// SetGallery godoc
// @Summary Заменить галерею цвета
// @Description Список ID вложений заменяется целиком, миниатюры пересобираются. Пустой список очищает галерею.
// @Tags editor
// @Accept json
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Param name path string true "Имя цвета"
// @Param request body dto.SetGalleryInput true "ID вложений"
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 404 {object} response.ErrorResponse "Цвет не найден"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id}/colors/{name}/gallery [put]
func (r *Routers) SetGallery(c echo.Context) error {
	var input dto.SetGalleryInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(input); err != nil {
		return r.invalidRequest(c, err)
	}

	return r.colorAction(c, "http.routers.SetGallery", func(postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
		return r.EditorService.SetGallery(c.Request().Context(), postID, draftID, name, input.Refs)
	})
}

// ClearGallery godoc
// @Summary Очистить галерею цвета
// @Tags editor
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Param name path string true "Имя цвета"
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 404 {object} response.ErrorResponse "Цвет не найден"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id}/colors/{name}/gallery [delete]
func (r *Routers) ClearGallery(c echo.Context) error {
	return r.colorAction(c, "http.routers.ClearGallery", func(postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
		return r.EditorService.ClearGallery(c.Request().Context(), postID, draftID, name)
	})
}

// SetColorValue godoc
// @Summary Изменить цвет
// @Tags editor
// @Accept json
// @Produce json
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Param name path string true "Имя цвета"
// @Param request body dto.SetColorValueInput true "Цвет #rrggbb"
// @Success 200 {object} response.Response{data=dto.EditorDraftResponse}
// @Failure 400 {object} response.ErrorResponse "Некорректный цвет"
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id}/colors/{name}/color [put]
func (r *Routers) SetColorValue(c echo.Context) error {
	var input dto.SetColorValueInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(input); err != nil {
		return r.invalidRequest(c, err)
	}

	return r.colorAction(c, "http.routers.SetColorValue", func(postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
		return r.EditorService.SetColorValue(c.Request().Context(), postID, draftID, name, input.Color)
	})
}

// DiscardDraft godoc
// @Summary Удалить черновик
// @Tags editor
// @Param post_id path int true "ID записи"
// @Param draft_id path string true "ID черновика" format(uuid)
// @Success 204
// @Security ApiKeyAuth
// @Router /api/v1/admin/cars/{post_id}/drafts/{draft_id} [delete]
func (r *Routers) DiscardDraft(c echo.Context) error {
	const op = "http.routers.DiscardDraft"

	post, _ := CurrentPost(c)
	log := r.log.With(slog.String("op", op), slog.Int64("post_id", post.ID))

	draftID, err := uuid.Parse(c.Param("draft_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, response.ErrDraftNotFound)
	}

	if err := r.EditorService.Discard(c.Request().Context(), post.ID, draftID); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) draftAction(c echo.Context, op string, fn func(postID int64, draftID uuid.UUID) (*editorsvc.View, error)) error {
	post, _ := CurrentPost(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("post_id", post.ID),
	)

	draftID, err := uuid.Parse(c.Param("draft_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, response.ErrDraftNotFound)
	}

	view, err := fn(post.ID, draftID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(draftResponse(view)))
}

func (r *Routers) colorAction(c echo.Context, op string, fn func(postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error)) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil || name == "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_slider", models.ErrInvalidColorName.Error()))
	}

	return r.draftAction(c, op, func(postID int64, draftID uuid.UUID) (*editorsvc.View, error) {
		return fn(postID, draftID, name)
	})
}

func draftResponse(view *editorsvc.View) dto.EditorDraftResponse {
	colors := make([]dto.ColorBlockResponse, 0, len(view.Blocks))
	for _, b := range view.Blocks {
		refs := b.Refs
		if refs == nil {
			refs = []string{}
		}
		previews := b.Previews
		if previews == nil {
			previews = []string{}
		}
		colors = append(colors, dto.ColorBlockResponse{
			Name:     b.Name,
			Color:    b.Color,
			Images:   b.Images,
			Refs:     refs,
			Previews: previews,
		})
	}

	return dto.EditorDraftResponse{
		DraftID: view.DraftID.String(),
		PostID:  view.PostID,
		Hash:    view.Hidden,
		Colors:  colors,
	}
}
