package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wslider/internal/domain/models"
	"wslider/internal/transport/http/dto"
	"wslider/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// UploadAttachment godoc
// @Summary Загрузка изображения
// @Description Загружает изображение для галерей слайдера. Возвращает ID вложения, который используется как ref.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение"
// @Param width formData integer false "Ширина в пикселях"
// @Param height formData integer false "Высота в пикселях"
// @Success 201 {object} response.Response{data=dto.AttachmentResponse}
// @Failure 400 {object} response.ErrorResponse "Некорректные входные данные"
// @Failure 413 {object} response.ErrorResponse "Превышен максимальный размер файла"
// @Failure 415 {object} response.ErrorResponse "Неподдерживаемый тип файла"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/v1/admin/attachments [post]
func (r *Routers) UploadAttachment(c echo.Context) error {
	const op = "http.routers.UploadAttachment"

	log := r.log.With(
		slog.String("op", op),
	)

	startTime := time.Now()
	defer func() {
		log.Debug("request completed", slog.Duration("duration", time.Since(startTime)))
	}()

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "File is required"))
	}

	userID, _ := CurrentUser(c)
	input := dto.AttachmentUploadInput{
		UploaderID: userID,
		File:       file,
		Width:      formInt(c, "width"),
		Height:     formInt(c, "height"),
	}
	if err := c.Validate(input); err != nil {
		return r.invalidRequest(c, err)
	}

	attachment, err := r.AssetService.Upload(c.Request().Context(), input)
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("upload successful",
		slog.Int64("attachment_id", attachment.ID),
		slog.Int64("file_size", attachment.FileSize),
	)

	return c.JSON(http.StatusCreated, response.SuccessResponse(r.attachmentResponse(attachment)))
}

// ListAttachments godoc
// @Summary Список изображений
// @Description Изображения для выбора в галерею, новые первыми
// @Tags attachments
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param per_page query int false "Размер страницы" default(20)
// @Success 200 {object} response.Response{data=dto.AttachmentListResponse}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/v1/admin/attachments [get]
func (r *Routers) ListAttachments(c echo.Context) error {
	const op = "http.routers.ListAttachments"

	log := r.log.With(
		slog.String("op", op),
	)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}

	list, total, err := r.AssetService.List(c.Request().Context(), page, perPage)
	if err != nil {
		return r.fail(c, log, err)
	}

	items := make([]dto.AttachmentResponse, 0, len(list))
	for i := range list {
		items = append(items, r.attachmentResponse(&list[i]))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.AttachmentListResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}))
}

func (r *Routers) attachmentResponse(a *models.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:           a.ID,
		Ref:          a.Ref(),
		Filename:     a.OriginalFilename,
		MimeType:     a.MimeType,
		FileSize:     a.FileSize,
		URL:          r.AssetService.URL(a, models.ImageSizeFull),
		ThumbnailURL: r.AssetService.URL(a, models.ImageSizeThumbnail),
		CreatedAt:    a.CreatedAt,
	}
}

func formInt(c echo.Context, name string) *int {
	v, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return nil
	}
	return &v
}
