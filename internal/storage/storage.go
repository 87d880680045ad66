package storage

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrDraftNotFound      = errors.New("draft not found")
	ErrorNoSuchKey        = errors.New("no such key")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
