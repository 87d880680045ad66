package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"

	redisapp "wslider/internal/storage/redis"
)

type Repository struct {
	User       UserRepository
	Post       PostRepository
	Attachment AttachmentRepository
	Draft      DraftRepository
}

func NewRepository(db *pgxpool.Pool, rdb *redisapp.Client) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Post:       NewPostRepository(db),
		Attachment: NewAttachmentRepository(db),
		Draft:      NewRedisDraftRepo(rdb),
	}
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
