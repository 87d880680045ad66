package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wslider/internal/domain/models"
	"wslider/internal/storage"
	redisapp "wslider/internal/storage/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDraftRepo keeps open editor working sets in redis until they expire.
type RedisDraftRepo struct {
	Client *redisapp.Client
}

func NewRedisDraftRepo(client *redisapp.Client) *RedisDraftRepo {
	return &RedisDraftRepo{Client: client}
}

func (r *RedisDraftRepo) SaveDraft(ctx context.Context, draft models.EditorDraft, exp time.Duration) error {
	const op = "repository.draft_repository.SaveDraft"

	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, draftKey(draft.PostID, draft.ID), b, exp).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisDraftRepo) GetDraft(ctx context.Context, postID int64, draftID uuid.UUID) (models.EditorDraft, error) {
	const op = "repository.draft_repository.GetDraft"

	val, err := r.Client.Get(ctx, draftKey(postID, draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.EditorDraft{}, fmt.Errorf("%s: %w", op, storage.ErrDraftNotFound)
		}
		return models.EditorDraft{}, fmt.Errorf("%s: %w", op, err)
	}

	var draft models.EditorDraft
	if err := json.Unmarshal(val, &draft); err != nil {
		return models.EditorDraft{}, fmt.Errorf("%s: %w", op, err)
	}

	return draft, nil
}

func (r *RedisDraftRepo) DeleteDraft(ctx context.Context, postID int64, draftID uuid.UUID) error {
	const op = "repository.draft_repository.DeleteDraft"

	if err := r.Client.Del(ctx, draftKey(postID, draftID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func draftKey(postID int64, draftID uuid.UUID) string {
	return "wslider:draft:" + strconv.FormatInt(postID, 10) + ":" + draftID.String()
}
