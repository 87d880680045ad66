package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"wslider/internal/storage"
	filestorage "wslider/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T, maxSize int64) *filestorage.LocalFileStorage {
	t.Helper()

	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "http://test.local/uploads/", maxSize)
	require.NoError(t, err)

	return fs
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs := setupFileStorage(t, 0)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		testFile := createTestFile(t, "red-1.jpg", "test content")

		filePath, size, err := fs.Save(ctx, testFile, "2024/05")
		require.NoError(t, err)

		assert.Equal(t, "2024/05/red-1.jpg", filePath)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(fs.GetFullPath(filePath))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("save with empty subpath", func(t *testing.T) {
		filePath, _, err := fs.Save(ctx, createTestFile(t, "blue.jpg", "x"), "")
		require.NoError(t, err)
		assert.Equal(t, "blue.jpg", filePath)
	})

	t.Run("subpath cannot escape base dir", func(t *testing.T) {
		filePath, _, err := fs.Save(ctx, createTestFile(t, "esc.jpg", "x"), "../../etc")
		require.NoError(t, err)
		assert.Equal(t, "etc/esc.jpg", filePath)
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fs.Save(ctx, createTestFile(t, "c.jpg", "x"), "subdir")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_SaveTooLarge(t *testing.T) {
	fs := setupFileStorage(t, 4)

	_, _, err := fs.Save(context.Background(), createTestFile(t, "big.jpg", "0123456789"), "")
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t, 0)
	ctx := context.Background()

	filePath, _, err := fs.Save(ctx, createTestFile(t, "to_delete.jpg", "content"), "")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, filePath))
	_, err = os.Stat(fs.GetFullPath(filePath))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, fs.Delete(ctx, "nonexistent.jpg"), storage.ErrFileNotFound)
}

func TestLocalFileStorage_Paths(t *testing.T) {
	fs := setupFileStorage(t, 0)

	assert.Equal(t, filepath.Join(fs.GetBaseDir(), "a", "b.jpg"), fs.GetFullPath("a/b.jpg"))
	assert.Equal(t, "http://test.local/uploads", fs.BaseURL())
	assert.Equal(t, "http://test.local/uploads/2024/05/red%201.jpg", fs.URL("2024/05/red 1.jpg"))
}

func TestNewLocalFileStorage_InvalidDirectory(t *testing.T) {
	_, err := filestorage.NewLocalFileStorage("/dev/null/uploads", "http://test.local", 0)
	assert.Error(t, err)
}

func TestLocalFileStorage_ConcurrentSave(t *testing.T) {
	fs := setupFileStorage(t, 0)
	ctx := context.Background()

	headers := make([]*multipart.FileHeader, 10)
	for i := range headers {
		headers[i] = createTestFile(t, "concurrent.jpg", "data")
	}

	var wg sync.WaitGroup
	for _, h := range headers {
		wg.Add(1)
		go func(h *multipart.FileHeader) {
			defer wg.Done()
			_, _, err := fs.Save(ctx, h, "concurrent")
			assert.NoError(t, err)
		}(h)
	}
	wg.Wait()
}
