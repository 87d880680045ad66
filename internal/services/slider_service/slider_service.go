package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/metrics"
	"wslider/internal/repository"

	"github.com/google/uuid"
)

// ErrNotSliderPost возвращается для типа записи без мета-бокса слайдера.
var ErrNotSliderPost = errors.New("post type has no slider")

type AssetResolver interface {
	Prefetch(ctx context.Context, refs []string) error
	Lookup(ctx context.Context, size models.ImageSize) models.AssetLookup
}

// SliderService хранит карту цветов в мета записи и готовит ее к рендеру.
type SliderService struct {
	log    *slog.Logger
	posts  repository.PostRepository
	assets AssetResolver
}

func NewSliderService(log *slog.Logger, posts repository.PostRepository, assets AssetResolver) *SliderService {
	return &SliderService{
		log:    log,
		posts:  posts,
		assets: assets,
	}
}

func (s *SliderService) Post(ctx context.Context, postID int64) (models.Post, error) {
	const op = "slider_service.Post"

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// Cars возвращает записи со слайдером, новые первыми.
func (s *SliderService) Cars(ctx context.Context, page, perPage int) ([]models.Post, int, error) {
	const op = "slider_service.Cars"

	posts, total, err := s.posts.ListPosts(ctx, models.PostTypeCar, page, perPage)
	if err != nil {
		s.log.Error("failed to list cars", slog.String("op", op), sl.Err(err))

		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

// CreateCar создает запись car без слайдера.
func (s *SliderService) CreateCar(ctx context.Context, title string, authorID uuid.UUID) (int64, error) {
	const op = "slider_service.CreateCar"

	log := s.log.With(
		slog.String("op", op),
		slog.String("author_id", authorID.String()),
	)

	id, err := s.posts.CreatePost(ctx, models.Post{
		PostType: models.PostTypeCar,
		Title:    title,
		AuthorID: authorID,
	})
	if err != nil {
		log.Error("failed to create car", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("car created", slog.Int64("post_id", id))

	return id, nil
}

// Load возвращает сохраненную конфигурацию записи. Отсутствующее или битое
// значение это пустая конфигурация, ошибкой считается только сбой хранилища.
func (s *SliderService) Load(ctx context.Context, postID int64) (*models.SliderConfig, error) {
	const op = "slider_service.Load"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
	)

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, ok, err := s.posts.GetPostMeta(ctx, postID, models.SliderMetaKey)
	if err != nil {
		log.Error("failed to read slider meta", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return models.NewSliderConfig(), nil
	}

	cfg, err := models.ParseSliderConfig(raw)
	if err != nil {
		log.Warn("stored slider config is malformed, treating as empty", sl.Err(err))

		return models.NewSliderConfig(), nil
	}

	return cfg, nil
}

// Save перезаписывает сохраненную конфигурацию. Слайдер есть только у car.
func (s *SliderService) Save(ctx context.Context, postID int64, cfg *models.SliderConfig) error {
	const op = "slider_service.Save"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
	)

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		metrics.SliderSavesTotal.WithLabelValues("failed").Inc()

		return fmt.Errorf("%s: %w", op, err)
	}
	if !post.HasSlider() {
		metrics.SliderSavesTotal.WithLabelValues("skipped").Inc()
		log.Info("post type has no slider", slog.String("post_type", post.PostType))

		return fmt.Errorf("%s: %w", op, ErrNotSliderPost)
	}

	if cfg == nil {
		cfg = models.NewSliderConfig()
	}

	if err := s.posts.UpdatePostMeta(ctx, postID, models.SliderMetaKey, cfg.Serialize()); err != nil {
		metrics.SliderSavesTotal.WithLabelValues("failed").Inc()
		log.Error("failed to save slider meta", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.SliderSavesTotal.WithLabelValues("saved").Inc()
	log.Info("slider saved", slog.Int("colors", cfg.Len()))

	return nil
}

// Clear удаляет мета слайдера, запись остается без цветов.
func (s *SliderService) Clear(ctx context.Context, postID int64) error {
	const op = "slider_service.Clear"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
	)

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.posts.DeletePostMeta(ctx, postID, models.SliderMetaKey); err != nil {
		log.Error("failed to delete slider meta", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("slider cleared")

	return nil
}

// SaveSerialized строго разбирает значение скрытого поля и сохраняет его.
// Некорректный ввод отклоняется, ничего не записывается.
func (s *SliderService) SaveSerialized(ctx context.Context, postID int64, raw string) error {
	const op = "slider_service.SaveSerialized"

	cfg, err := models.ParseSliderConfig(raw)
	if err != nil {
		metrics.SliderSavesTotal.WithLabelValues("rejected").Inc()
		s.log.Warn("rejected slider submission",
			slog.String("op", op),
			slog.Int64("post_id", postID),
			sl.Err(err),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	return s.Save(ctx, postID, cfg)
}

// Resolve загружает конфигурацию записи и превращает ссылки в URL large-изображений.
func (s *SliderService) Resolve(ctx context.Context, postID int64) (*models.ResolvedSliderConfig, error) {
	const op = "slider_service.Resolve"

	cfg, err := s.Load(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.ResolveConfig(ctx, cfg, models.ImageSizeLarge), nil
}

// ResolveConfig резолвит cfg одним пакетным запросом. При ошибке prefetch
// ссылки ищутся по одной.
func (s *SliderService) ResolveConfig(ctx context.Context, cfg *models.SliderConfig, size models.ImageSize) *models.ResolvedSliderConfig {
	const op = "slider_service.ResolveConfig"

	log := s.log.With(slog.String("op", op))

	if cfg == nil || cfg.Len() == 0 {
		return models.Resolve(cfg, nil)
	}

	if err := s.assets.Prefetch(ctx, cfg.AllRefs()); err != nil {
		log.Warn("asset prefetch failed", sl.Err(err))
	}

	resolved := models.Resolve(cfg, s.assets.Lookup(ctx, size))

	if dropped := resolved.Dropped(); dropped > 0 {
		metrics.UnresolvedRefsTotal.Add(float64(dropped))
		log.Debug("dropped unresolved image refs", slog.Int("dropped", dropped))
	}

	return resolved
}
