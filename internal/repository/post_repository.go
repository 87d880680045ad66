package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wslider/internal/domain/models"
	"wslider/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepository(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostRepo) CreatePost(ctx context.Context, post models.Post) (int64, error) {
	const op = "repository.post_repository.CreatePost"

	query, args, err := r.sb.Insert("posts").
		Columns("post_type", "title", "author_id").
		Values(post.PostType, post.Title, post.AuthorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *PostRepo) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	const op = "repository.post_repository.GetPost"

	query, args, err := r.sb.Select("id", "post_type", "title", "author_id", "created_at", "updated_at").
		From("posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	var post models.Post
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.PostType,
		&post.Title,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListPosts returns one page of posts of postType, newest first, plus the total count.
func (r *PostRepo) ListPosts(ctx context.Context, postType string, page, perPage int) ([]models.Post, int, error) {
	const op = "repository.post_repository.ListPosts"

	page, perPage = normalizePage(page, perPage)

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("posts").Where(sq.Eq{"post_type": postType}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select("id", "post_type", "title", "author_id", "created_at", "updated_at").
		From("posts").
		Where(sq.Eq{"post_type": postType}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.PostType, &p.Title, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

// GetPostMeta reads a single meta value. ok is false when the key was never written.
func (r *PostRepo) GetPostMeta(ctx context.Context, postID int64, key string) (string, bool, error) {
	const op = "repository.post_repository.GetPostMeta"

	query, args, err := r.sb.Select("meta_value").
		From("post_meta").
		Where(sq.Eq{"post_id": postID, "meta_key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	var value string
	err = r.db.QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return value, true, nil
}

// UpdatePostMeta upserts the value and bumps the post's updated_at in one transaction.
func (r *PostRepo) UpdatePostMeta(ctx context.Context, postID int64, key, value string) error {
	const op = "repository.post_repository.UpdatePostMeta"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	touch, touchArgs, err := r.sb.Update("posts").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, touch, touchArgs...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	query, args, err := r.sb.Insert("post_meta").
		Columns("post_id", "meta_key", "meta_value").
		Values(postID, key, value).
		Suffix("ON CONFLICT (post_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (r *PostRepo) DeletePostMeta(ctx context.Context, postID int64, key string) error {
	const op = "repository.post_repository.DeletePostMeta"

	query, args, err := r.sb.Delete("post_meta").
		Where(sq.Eq{"post_id": postID, "meta_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
