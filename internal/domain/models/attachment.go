package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ImageSize string

const (
	ImageSizeThumbnail ImageSize = "thumbnail"
	ImageSizeLarge     ImageSize = "large"
	ImageSizeFull      ImageSize = "full"
)

// Sizes путь каждого размера изображения относительно базовой директории хранилища.
type Sizes map[ImageSize]string

// Attachment изображение в хранилище. Его ID десятичной строкой это ссылка
// в галереях слайдера.
type Attachment struct {
	ID               int64     `json:"id" db:"id"`
	UploaderID       uuid.UUID `json:"uploader_id" db:"uploader_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	MimeType         string    `json:"mime_type,omitempty" db:"mime_type"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	Width            *int      `json:"width,omitempty" db:"width"`
	Height           *int      `json:"height,omitempty" db:"height"`
	Sizes            Sizes     `json:"sizes" db:"sizes"`
}

// Path возвращает путь размера size, иначе путь полного изображения.
func (a *Attachment) Path(size ImageSize) (string, bool) {
	if p, ok := a.Sizes[size]; ok && p != "" {
		return p, true
	}
	if p, ok := a.Sizes[ImageSizeFull]; ok && p != "" {
		return p, true
	}
	return "", false
}

// Ref ссылка на вложение для галереи.
func (a *Attachment) Ref() string {
	return fmt.Sprintf("%d", a.ID)
}

// Value реализует driver.Valuer для сохранения Sizes в JSONB
func (s Sizes) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan реализует sql.Scanner для чтения JSONB в Sizes
func (s *Sizes) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported sizes type %T", value)
	}
}

func (a *Attachment) Validate() error {
	var validationErrors []string

	if a.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(a.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if a.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}
	if a.MimeType != "" && !strings.HasPrefix(a.MimeType, "image/") {
		validationErrors = append(validationErrors, fmt.Sprintf("mime type %q is not an image", a.MimeType))
	}
	if _, ok := a.Sizes[ImageSizeFull]; !ok {
		validationErrors = append(validationErrors, "full size path is required")
	}
	if a.Width != nil && *a.Width <= 0 || a.Height != nil && *a.Height <= 0 {
		validationErrors = append(validationErrors, "width and height must be positive values")
	}

	if len(validationErrors) > 0 {
		return &AttachmentValidationError{
			Errors: validationErrors,
		}
	}

	return nil
}

type AttachmentValidationError struct {
	Errors []string
}

func (e *AttachmentValidationError) Error() string {
	return fmt.Sprintf("attachment validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsAttachmentValidationError(err error) bool {
	_, ok := err.(*AttachmentValidationError)
	return ok
}
