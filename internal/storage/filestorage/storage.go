package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"wslider/internal/storage"
)

// FileStorage интерфейс для работы с файловым хранилищем картинок
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	URL(relativePath string) string
	BaseURL() string
}

// LocalFileStorage хранит загрузки на локальном диске и отдает их по baseURL
type LocalFileStorage struct {
	baseDir string
	baseURL string
	maxSize int64
}

// NewLocalFileStorage создает baseDir, если его нет. maxSize <= 0 снимает лимит.
func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", 0, fmt.Errorf("%w: %d > %d", storage.ErrFileTooLarge, file.Size, s.maxSize)
	}

	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", 0, fmt.Errorf("%w: empty filename", storage.ErrInvalidFileType)
	}

	relPath := filepath.Join(filepath.Clean("/" + subPath)[1:], name)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return "", 0, ctx.Err()
	}

	return filepath.ToSlash(relPath), size, nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := os.Remove(s.GetFullPath(filePath)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", storage.ErrFileNotFound, filePath)
		}
		return err
	}
	return nil
}

// GetFullPath возвращает путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(relativePath))
}

// URL возвращает публичный адрес файла
func (s *LocalFileStorage) URL(relativePath string) string {
	u, err := url.JoinPath(s.baseURL, strings.Split(filepath.ToSlash(relativePath), "/")...)
	if err != nil {
		return s.baseURL + "/" + filepath.ToSlash(relativePath)
	}
	return u
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
