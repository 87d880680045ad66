package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"wslider/internal/domain/editor"
	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	editorsvc "wslider/internal/services/editor_service"
	slidersvc "wslider/internal/services/slider_service"
	usersvc "wslider/internal/services/user_service"
	"wslider/internal/storage"
	"wslider/internal/transport/http/dto"
	"wslider/internal/transport/http/dto/response"
	"wslider/internal/widget"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "wslider/docs"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (models.TokenPair, error)
	Authenticate(token string) (uuid.UUID, error)
	CanEditPost(ctx context.Context, userID uuid.UUID, post models.Post) (bool, error)
}

type SliderService interface {
	Post(ctx context.Context, postID int64) (models.Post, error)
	Cars(ctx context.Context, page, perPage int) ([]models.Post, int, error)
	SaveSerialized(ctx context.Context, postID int64, raw string) error
	Resolve(ctx context.Context, postID int64) (*models.ResolvedSliderConfig, error)
}

type EditorService interface {
	Open(ctx context.Context, postID int64) (*editorsvc.View, error)
	Draft(ctx context.Context, postID int64, draftID uuid.UUID) (*editorsvc.View, error)
	AddColor(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error)
	RemoveColor(ctx context.Context, postID int64, draftID uuid.UUID, name string, confirmed bool) (*editorsvc.View, error)
	SetGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string, refs []string) (*editorsvc.View, error)
	ClearGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error)
	SetColorValue(ctx context.Context, postID int64, draftID uuid.UUID, name, color string) (*editorsvc.View, error)
	Discard(ctx context.Context, postID int64, draftID uuid.UUID) error
}

type AssetService interface {
	Upload(ctx context.Context, input dto.AttachmentUploadInput) (*models.Attachment, error)
	List(ctx context.Context, page, perPage int) ([]models.Attachment, int, error)
	URL(a *models.Attachment, size models.ImageSize) string
}

type Routers struct {
	log           *slog.Logger
	UserService   UserService
	SliderService SliderService
	EditorService EditorService
	AssetService  AssetService
	Widgets       *widget.Registry
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	sliderService SliderService,
	editorService EditorService,
	assetService AssetService,
	widgets *widget.Registry,
) *Routers {
	return &Routers{
		log:           log,
		UserService:   userService,
		SliderService: sliderService,
		EditorService: editorService,
		AssetService:  assetService,
		Widgets:       widgets,
	}
}

// fail maps service errors onto the error envelope.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var validationErr *models.AttachmentValidationError

	switch {
	case errors.Is(err, storage.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	case errors.Is(err, storage.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, response.ErrDraftNotFound)
	case errors.Is(err, models.ErrColorNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("color_not_found", err.Error()))
	case errors.Is(err, models.ErrColorExists):
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("color_exists", err.Error()))
	case errors.Is(err, editor.ErrConfirmationRequired):
		return c.JSON(http.StatusPreconditionRequired, response.ErrorResponseWithDetails("confirmation_required", err.Error()))
	case errors.Is(err, models.ErrEmptyColorName),
		errors.Is(err, models.ErrInvalidColorName),
		errors.Is(err, models.ErrInvalidColorValue),
		errors.Is(err, models.ErrInvalidRef),
		errors.Is(err, models.ErrMalformedConfig):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_slider", err.Error()))
	case errors.Is(err, slidersvc.ErrNotSliderPost):
		return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("not_slider_post", err.Error()))
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("authentication_failed", "Invalid email or password"))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", err.Error()))
	case errors.Is(err, storage.ErrInvalidFileType), errors.As(err, &validationErr):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("invalid_file", err.Error()))
	}

	log.Error("request failed", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

func (r *Routers) invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.ErrInvalidRequestFormat.Error, err.Error()))
}
