package dto

import (
	"mime/multipart"
	"time"

	"wslider/internal/domain/models"

	"github.com/google/uuid"
)

type AttachmentUploadInput struct {
	UploaderID uuid.UUID             `json:"-"`
	File       *multipart.FileHeader `json:"-" form:"file" validate:"required"`

	Width  *int `json:"width,omitempty" form:"width" validate:"omitempty,min=1"`
	Height *int `json:"height,omitempty" form:"height" validate:"omitempty,min=1"`
}

// ToDomain собирает вложение из сохраненного файла. Пока храним только full,
// остальные размеры берутся из него.
func (input *AttachmentUploadInput) ToDomain(filePath string, fileSize int64) *models.Attachment {
	return &models.Attachment{
		UploaderID:       input.UploaderID,
		CreatedAt:        time.Now().UTC(),
		OriginalFilename: input.File.Filename,
		MimeType:         input.File.Header.Get("Content-Type"),
		FileSize:         fileSize,
		Width:            input.Width,
		Height:           input.Height,
		Sizes:            models.Sizes{models.ImageSizeFull: filePath},
	}
}

type AttachmentResponse struct {
	ID           int64     `json:"id"`
	Ref          string    `json:"ref"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mime_type,omitempty"`
	FileSize     int64     `json:"file_size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type AttachmentListResponse struct {
	Items   []AttachmentResponse `json:"items"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}
