package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wslider/internal/domain/editor"
	"wslider/internal/domain/models"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/repository"

	"github.com/google/uuid"
)

type SliderLoader interface {
	Load(ctx context.Context, postID int64) (*models.SliderConfig, error)
}

type ThumbnailSource interface {
	URLs(ctx context.Context, refs []string, size models.ImageSize) []string
}

// View состояние редактора после каждого действия.
type View struct {
	DraftID uuid.UUID
	PostID  int64
	Hidden  string
	Blocks  []editor.Block
}

// EditorService хранит по одной editor.Form на открытый мета-бокс в хранилище
// черновиков, каждое действие редактора это один запрос.
type EditorService struct {
	log      *slog.Logger
	slider   SliderLoader
	drafts   repository.DraftRepository
	thumbs   ThumbnailSource
	draftTTL time.Duration
}

func NewEditorService(
	log *slog.Logger,
	slider SliderLoader,
	drafts repository.DraftRepository,
	thumbs ThumbnailSource,
	draftTTL time.Duration,
) *EditorService {
	return &EditorService{
		log:      log,
		slider:   slider,
		drafts:   drafts,
		thumbs:   thumbs,
		draftTTL: draftTTL,
	}
}

// Open создает черновик из сохраненной конфигурации, с миниатюрами всех галерей.
func (s *EditorService) Open(ctx context.Context, postID int64) (*View, error) {
	const op = "editor_service.Open"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
	)

	cfg, err := s.slider.Load(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	form := editor.NewForm(cfg)
	for _, entry := range cfg.Entries() {
		if len(entry.Refs) == 0 {
			continue
		}
		if err := form.SetPreviews(entry.Name, s.thumbs.URLs(ctx, entry.Refs, models.ImageSizeThumbnail)); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	draftID := uuid.New()
	if err := s.store(ctx, postID, draftID, form); err != nil {
		log.Error("failed to store draft", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("editor opened", slog.String("draft_id", draftID.String()), slog.Int("colors", cfg.Len()))

	return view(postID, draftID, form), nil
}

func (s *EditorService) Draft(ctx context.Context, postID int64, draftID uuid.UUID) (*View, error) {
	const op = "editor_service.Draft"

	form, err := s.restore(ctx, postID, draftID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view(postID, draftID, form), nil
}

func (s *EditorService) AddColor(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*View, error) {
	return s.mutate(ctx, "editor_service.AddColor", postID, draftID, func(f *editor.Form) error {
		return f.AddColor(name)
	})
}

func (s *EditorService) RemoveColor(ctx context.Context, postID int64, draftID uuid.UUID, name string, confirmed bool) (*View, error) {
	return s.mutate(ctx, "editor_service.RemoveColor", postID, draftID, func(f *editor.Form) error {
		return f.RemoveColor(name, confirmed)
	})
}

// SetGallery заменяет вложения цвета и пересобирает миниатюры.
func (s *EditorService) SetGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string, refs []string) (*View, error) {
	return s.mutate(ctx, "editor_service.SetGallery", postID, draftID, func(f *editor.Form) error {
		if err := f.SetGallery(name, refs); err != nil {
			return err
		}
		if len(refs) == 0 {
			return nil
		}
		return f.SetPreviews(name, s.thumbs.URLs(ctx, refs, models.ImageSizeThumbnail))
	})
}

func (s *EditorService) ClearGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*View, error) {
	return s.SetGallery(ctx, postID, draftID, name, nil)
}

func (s *EditorService) SetColorValue(ctx context.Context, postID int64, draftID uuid.UUID, name, color string) (*View, error) {
	return s.mutate(ctx, "editor_service.SetColorValue", postID, draftID, func(f *editor.Form) error {
		return f.SetColorValue(name, color)
	})
}

// Discard удаляет черновик после сохранения записи или закрытия редактора.
func (s *EditorService) Discard(ctx context.Context, postID int64, draftID uuid.UUID) error {
	const op = "editor_service.Discard"

	if err := s.drafts.DeleteDraft(ctx, postID, draftID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *EditorService) mutate(ctx context.Context, op string, postID int64, draftID uuid.UUID, fn func(*editor.Form) error) (*View, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
		slog.String("draft_id", draftID.String()),
	)

	form, err := s.restore(ctx, postID, draftID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(form); err != nil {
		log.Debug("editor action rejected", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store(ctx, postID, draftID, form); err != nil {
		log.Error("failed to store draft", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view(postID, draftID, form), nil
}

func (s *EditorService) restore(ctx context.Context, postID int64, draftID uuid.UUID) (*editor.Form, error) {
	draft, err := s.drafts.GetDraft(ctx, postID, draftID)
	if err != nil {
		return nil, err
	}

	return editor.Restore(draft.Hash, draft.Previews)
}

func (s *EditorService) store(ctx context.Context, postID int64, draftID uuid.UUID, form *editor.Form) error {
	return s.drafts.SaveDraft(ctx, models.EditorDraft{
		ID:        draftID,
		PostID:    postID,
		Hash:      form.Hidden(),
		Previews:  form.AllPreviews(),
		UpdatedAt: time.Now().UTC(),
	}, s.draftTTL)
}

func view(postID int64, draftID uuid.UUID, form *editor.Form) *View {
	return &View{
		DraftID: draftID,
		PostID:  postID,
		Hidden:  form.Hidden(),
		Blocks:  form.Blocks(),
	}
}
