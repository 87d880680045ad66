package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/metrics"
	"wslider/internal/repository"
	"wslider/internal/storage"
	filestorage "wslider/internal/storage/filestorage"
	"wslider/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// missing отмечает несуществующий ID, повторные поиски не идут в базу.
type missing struct{}

// AssetService хранилище изображений: загрузка, список и ref -> URL.
type AssetService struct {
	log         *slog.Logger
	repo        repository.AttachmentRepository
	fileStorage filestorage.FileStorage
	cache       *cache.Cache
}

func NewAssetService(
	log *slog.Logger,
	repo repository.AttachmentRepository,
	fileStorage filestorage.FileStorage,
	cacheTTL, cleanupInterval time.Duration,
) *AssetService {
	return &AssetService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		cache:       cache.New(cacheTTL, cleanupInterval),
	}
}

func (s *AssetService) Upload(ctx context.Context, input dto.AttachmentUploadInput) (*models.Attachment, error) {
	const op = "asset_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", input.File.Filename),
	)

	log.Info("upload attachment")

	// уникальное имя, чтобы одинаковые файлы не перетирали друг друга
	header := *input.File
	header.Filename = uuid.NewString()[:8] + "-" + filepath.Base(input.File.Filename)

	filePath, fileSize, err := s.fileStorage.Save(ctx, &header, time.Now().UTC().Format("2006/01"))
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	attachment := input.ToDomain(filePath, fileSize)

	if err := attachment.Validate(); err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Warn("attachment validation failed", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateAttachment(ctx, attachment)
	if err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("failed to save attachment to database", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.SetDefault(cacheKey(created.ID), created)

	log.Info("attachment uploaded", slog.Int64("id", created.ID))

	return created, nil
}

func (s *AssetService) List(ctx context.Context, page, perPage int) ([]models.Attachment, int, error) {
	const op = "asset_service.List"

	list, total, err := s.repo.ListAttachments(ctx, page, perPage)
	if err != nil {
		s.log.Error("failed to list attachments", slog.String("op", op), sl.Err(err))

		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return list, total, nil
}

// Prefetch загружает все незакешированные ссылки одним запросом. Нечисловые
// ссылки пропускаются, они никогда не резолвятся.
func (s *AssetService) Prefetch(ctx context.Context, refs []string) error {
	const op = "asset_service.Prefetch"

	seen := make(map[int64]struct{}, len(refs))
	var ids []int64
	for _, ref := range refs {
		id, ok := parseRef(ref)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, cached := s.cache.Get(cacheKey(id)); cached {
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil
	}

	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Error("failed to prefetch attachments", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range found {
		a := found[i]
		s.cache.SetDefault(cacheKey(a.ID), &a)
		delete(seen, a.ID)
	}
	for _, id := range ids {
		if _, notFound := seen[id]; notFound {
			s.cache.SetDefault(cacheKey(id), missing{})
		}
	}

	return nil
}

// Lookup возвращает AssetLookup для URL заданного размера. Незакешированные
// ссылки ищутся одиночным запросом, ошибка базы считается промахом.
func (s *AssetService) Lookup(ctx context.Context, size models.ImageSize) models.AssetLookup {
	return func(ref string) (string, bool) {
		a, ok := s.attachment(ctx, ref)
		if !ok {
			return "", false
		}

		p, ok := a.Path(size)
		if !ok {
			return "", false
		}

		return s.fileStorage.URL(p), true
	}
}

// URLs резолвит ссылки по порядку, промахи отбрасываются. При ошибке prefetch
// ссылки ищутся по одной.
func (s *AssetService) URLs(ctx context.Context, refs []string, size models.ImageSize) []string {
	const op = "asset_service.URLs"

	if err := s.Prefetch(ctx, refs); err != nil {
		s.log.Warn("asset prefetch failed", slog.String("op", op), sl.Err(err))
	}

	lookup := s.Lookup(ctx, size)
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		if u, ok := lookup(ref); ok {
			urls = append(urls, u)
		}
	}

	return urls
}

// URL возвращает публичный URL размера size вложения a.
func (s *AssetService) URL(a *models.Attachment, size models.ImageSize) string {
	p, ok := a.Path(size)
	if !ok {
		return ""
	}
	return s.fileStorage.URL(p)
}

func (s *AssetService) attachment(ctx context.Context, ref string) (*models.Attachment, bool) {
	const op = "asset_service.Lookup"

	id, ok := parseRef(ref)
	if !ok {
		return nil, false
	}

	if v, ok := s.cache.Get(cacheKey(id)); ok {
		metrics.AssetCacheLookups.WithLabelValues("hit").Inc()
		a, found := v.(*models.Attachment)
		return a, found
	}
	metrics.AssetCacheLookups.WithLabelValues("miss").Inc()

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAttachmentNotFound) {
			s.cache.SetDefault(cacheKey(id), missing{})
			return nil, false
		}
		s.log.Warn("attachment lookup failed", slog.String("op", op), slog.String("ref", ref), sl.Err(err))

		return nil, false
	}

	s.cache.SetDefault(cacheKey(id), a)

	return a, true
}

func parseRef(ref string) (int64, bool) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func cacheKey(id int64) string {
	return "attachment:" + strconv.FormatInt(id, 10)
}
