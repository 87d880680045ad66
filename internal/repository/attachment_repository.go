package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wslider/internal/domain/models"
	"wslider/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var attachmentColumns = []string{
	"id",
	"uploader_id",
	"created_at",
	"original_filename",
	"mime_type",
	"file_size",
	"width",
	"height",
	"sizes",
}

type AttachmentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepo {
	return &AttachmentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AttachmentRepo) CreateAttachment(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	const op = "repository.attachment_repository.CreateAttachment"

	query, args, err := r.sb.Insert("attachments").
		Columns(
			"uploader_id",
			"created_at",
			"original_filename",
			"mime_type",
			"file_size",
			"width",
			"height",
			"sizes",
		).
		Values(
			a.UploaderID,
			a.CreatedAt,
			a.OriginalFilename,
			a.MimeType,
			a.FileSize,
			a.Width,
			a.Height,
			a.Sizes,
		).
		Suffix("RETURNING " + strings.Join(attachmentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanAttachment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create attachment: %w", op, err)
	}

	return created, nil
}

func (r *AttachmentRepo) FindByID(ctx context.Context, id int64) (*models.Attachment, error) {
	const op = "repository.attachment_repository.FindByID"

	query, args, err := r.sb.Select(attachmentColumns...).
		From("attachments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, err := scanAttachment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAttachmentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// FindByIDs loads all existing attachments among ids in one query. Missing ids are skipped.
func (r *AttachmentRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Attachment, error) {
	const op = "repository.attachment_repository.FindByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select(attachmentColumns...).
		From("attachments").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.queryAttachments(ctx, op, query, args)
}

func (r *AttachmentRepo) ListAttachments(ctx context.Context, page, perPage int) ([]models.Attachment, int, error) {
	const op = "repository.attachment_repository.ListAttachments"

	page, perPage = normalizePage(page, perPage)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM attachments").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(attachmentColumns...).
		From("attachments").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	list, err := r.queryAttachments(ctx, op, query, args)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *AttachmentRepo) queryAttachments(ctx context.Context, op, query string, args []interface{}) ([]models.Attachment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []models.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return list, nil
}

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	var (
		a        models.Attachment
		mimeType *string
	)
	err := row.Scan(
		&a.ID,
		&a.UploaderID,
		&a.CreatedAt,
		&a.OriginalFilename,
		&mimeType,
		&a.FileSize,
		&a.Width,
		&a.Height,
		&a.Sizes,
	)
	if err != nil {
		return nil, err
	}
	if mimeType != nil {
		a.MimeType = *mimeType
	}

	return &a, nil
}
