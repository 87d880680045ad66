package repository

import (
	"context"
	"time"

	"wslider/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (int64, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, postType string, page, perPage int) ([]models.Post, int, error)
	GetPostMeta(ctx context.Context, postID int64, key string) (string, bool, error)
	UpdatePostMeta(ctx context.Context, postID int64, key, value string) error
	DeletePostMeta(ctx context.Context, postID int64, key string) error
}

type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, a *models.Attachment) (*models.Attachment, error)
	FindByID(ctx context.Context, id int64) (*models.Attachment, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Attachment, error)
	ListAttachments(ctx context.Context, page, perPage int) ([]models.Attachment, int, error)
}

type DraftRepository interface {
	SaveDraft(ctx context.Context, draft models.EditorDraft, exp time.Duration) error
	GetDraft(ctx context.Context, postID int64, draftID uuid.UUID) (models.EditorDraft, error)
	DeleteDraft(ctx context.Context, postID int64, draftID uuid.UUID) error
}
