package worklog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWorkLogRepository struct {
	mock.Mock
}

func (m *MockWorkLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*worklog.DailyWorkLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklog.DailyWorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]worklog.DailyWorkLog, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]worklog.DailyWorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]worklog.DailyWorkLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]worklog.DailyWorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) Save(ctx context.Context, log *worklog.DailyWorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockWorkLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo worklog.WorkLogRepository, storage ObjectStorageService) *WorkLogService {
	return NewWorkLogService(repo, storage, WorkLogServiceConfig{MaxMediaPerLog: 2}, zap.NewNop())
}

func TestWorkLogServiceCreate(t *testing.T) {
	ctx := context.Background()
	createdBy := uuid.New()

	repo := new(MockWorkLogRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*worklog.DailyWorkLog")).Return(nil)

	service := newTestService(repo, nil)
	resp, err := service.Create(ctx, CreateWorkLogRequest{
		WorkDate:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Poured first floor slab, 12 labourers on site",
	}, createdBy)
	require.NoError(t, err)

	assert.Equal(t, createdBy, resp.CreatedBy)
	assert.Equal(t, "Poured first floor slab, 12 labourers on site", resp.Description)
	assert.Empty(t, resp.Media)
	repo.AssertExpectations(t)
}

func TestWorkLogServiceMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("upload request issues presigned url", func(t *testing.T) {
		log, err := worklog.NewDailyWorkLog(time.Now(), "Slab work", uuid.New())
		require.NoError(t, err)

		repo := new(MockWorkLogRepository)
		repo.On("FindByID", ctx, log.ID).Return(log, nil)

		storage := new(MockObjectStorage)
		expiry := time.Now().Add(15 * time.Minute)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.AnythingOfType("time.Duration")).
			Return("https://storage.example/put", expiry, nil)

		service := newTestService(repo, storage)
		resp, err := service.RequestMediaUpload(ctx, log.ID, RequestMediaUploadRequest{
			FileName:    "slab.JPG",
			ContentType: "image/jpeg",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://storage.example/put", resp.UploadURL)
		assert.Contains(t, resp.StorageKey, "worklogs/"+log.ID.String()+"/")
		assert.Contains(t, resp.StorageKey, ".jpg")
	})

	t.Run("attach verifies the object exists", func(t *testing.T) {
		log, err := worklog.NewDailyWorkLog(time.Now(), "Slab work", uuid.New())
		require.NoError(t, err)

		repo := new(MockWorkLogRepository)
		repo.On("FindByID", ctx, log.ID).Return(log, nil)

		storage := new(MockObjectStorage)
		storage.On("ObjectExists", ctx, "worklogs/x/missing.jpg").Return(false, nil)

		service := newTestService(repo, storage)
		_, err = service.AttachMedia(ctx, log.ID, AttachMediaRequest{
			StorageKey: "worklogs/x/missing.jpg",
			Type:       "PHOTO",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MEDIA_NOT_UPLOADED", domainErr.Code)
	})

	t.Run("attach stores media and presigns download", func(t *testing.T) {
		log, err := worklog.NewDailyWorkLog(time.Now(), "Slab work", uuid.New())
		require.NoError(t, err)

		repo := new(MockWorkLogRepository)
		repo.On("FindByID", ctx, log.ID).Return(log, nil)
		repo.On("Save", ctx, log).Return(nil)

		storage := new(MockObjectStorage)
		storage.On("ObjectExists", ctx, "worklogs/a/b.jpg").Return(true, nil)
		storage.On("GenerateDownloadURL", ctx, "worklogs/a/b.jpg", mock.AnythingOfType("time.Duration")).
			Return("https://storage.example/get", time.Now().Add(time.Hour), nil)

		service := newTestService(repo, storage)
		resp, err := service.AttachMedia(ctx, log.ID, AttachMediaRequest{
			StorageKey: "worklogs/a/b.jpg",
			Type:       "PHOTO",
			Caption:    "Slab curing",
		})
		require.NoError(t, err)

		require.Len(t, resp.Media, 1)
		assert.Equal(t, "PHOTO", resp.Media[0].Type)
		assert.Equal(t, "https://storage.example/get", resp.Media[0].DownloadURL)
	})

	t.Run("media limit enforced", func(t *testing.T) {
		log, err := worklog.NewDailyWorkLog(time.Now(), "Slab work", uuid.New())
		require.NoError(t, err)
		_, err = log.AttachMedia(worklog.MediaTypePhoto, "worklogs/a/1.jpg", "")
		require.NoError(t, err)
		_, err = log.AttachMedia(worklog.MediaTypePhoto, "worklogs/a/2.jpg", "")
		require.NoError(t, err)

		repo := new(MockWorkLogRepository)
		repo.On("FindByID", ctx, log.ID).Return(log, nil)

		service := newTestService(repo, new(MockObjectStorage))
		_, err = service.AttachMedia(ctx, log.ID, AttachMediaRequest{
			StorageKey: "worklogs/a/3.jpg",
			Type:       "PHOTO",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MEDIA_LIMIT_REACHED", domainErr.Code)
	})

	t.Run("remove media deletes the object too", func(t *testing.T) {
		log, err := worklog.NewDailyWorkLog(time.Now(), "Slab work", uuid.New())
		require.NoError(t, err)
		media, err := log.AttachMedia(worklog.MediaTypePhoto, "worklogs/a/1.jpg", "")
		require.NoError(t, err)

		repo := new(MockWorkLogRepository)
		repo.On("FindByID", ctx, log.ID).Return(log, nil)
		repo.On("Save", ctx, log).Return(nil)

		storage := new(MockObjectStorage)
		storage.On("DeleteObject", ctx, "worklogs/a/1.jpg").Return(nil)

		service := newTestService(repo, storage)
		require.NoError(t, service.RemoveMedia(ctx, log.ID, media.ID))

		assert.Empty(t, log.Media)
		storage.AssertExpectations(t)
	})
}
