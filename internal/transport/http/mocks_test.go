package http_test

import (
	"context"

	"wslider/internal/domain/models"
	editorsvc "wslider/internal/services/editor_service"
	"wslider/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.TokenPair), args.Error(1)
}

func (m *MockUserService) Authenticate(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserService) CanEditPost(ctx context.Context, userID uuid.UUID, post models.Post) (bool, error) {
	args := m.Called(ctx, userID, post)
	return args.Bool(0), args.Error(1)
}

type MockSliderService struct {
	mock.Mock
}

func (m *MockSliderService) Post(ctx context.Context, postID int64) (models.Post, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockSliderService) Cars(ctx context.Context, page, perPage int) ([]models.Post, int, error) {
	args := m.Called(ctx, page, perPage)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Int(1), args.Error(2)
}

func (m *MockSliderService) SaveSerialized(ctx context.Context, postID int64, raw string) error {
	args := m.Called(ctx, postID, raw)
	return args.Error(0)
}

func (m *MockSliderService) Resolve(ctx context.Context, postID int64) (*models.ResolvedSliderConfig, error) {
	args := m.Called(ctx, postID)
	resolved, _ := args.Get(0).(*models.ResolvedSliderConfig)
	return resolved, args.Error(1)
}

type MockEditorService struct {
	mock.Mock
}

func view(args mock.Arguments) (*editorsvc.View, error) {
	v, _ := args.Get(0).(*editorsvc.View)
	return v, args.Error(1)
}

func (m *MockEditorService) Open(ctx context.Context, postID int64) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID))
}

func (m *MockEditorService) Draft(ctx context.Context, postID int64, draftID uuid.UUID) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID))
}

func (m *MockEditorService) AddColor(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID, name))
}

func (m *MockEditorService) RemoveColor(ctx context.Context, postID int64, draftID uuid.UUID, name string, confirmed bool) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID, name, confirmed))
}

func (m *MockEditorService) SetGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string, refs []string) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID, name, refs))
}

func (m *MockEditorService) ClearGallery(ctx context.Context, postID int64, draftID uuid.UUID, name string) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID, name))
}

func (m *MockEditorService) SetColorValue(ctx context.Context, postID int64, draftID uuid.UUID, name, color string) (*editorsvc.View, error) {
	return view(m.Called(ctx, postID, draftID, name, color))
}

func (m *MockEditorService) Discard(ctx context.Context, postID int64, draftID uuid.UUID) error {
	return m.Called(ctx, postID, draftID).Error(0)
}

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Upload(ctx context.Context, input dto.AttachmentUploadInput) (*models.Attachment, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*models.Attachment)
	return a, args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, page, perPage int) ([]models.Attachment, int, error) {
	args := m.Called(ctx, page, perPage)
	list, _ := args.Get(0).([]models.Attachment)
	return list, args.Int(1), args.Error(2)
}

func (m *MockAssetService) URL(a *models.Attachment, size models.ImageSize) string {
	return m.Called(a, size).String(0)
}
