package worklog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/worklog"
	"go.uber.org/zap"
)

// ObjectStorageService abstracts presigned-URL object storage for work media
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// WorkLogServiceConfig holds tunables for the work log service
type WorkLogServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxMediaPerLog    int
}

// DefaultWorkLogServiceConfig returns the default configuration
func DefaultWorkLogServiceConfig() WorkLogServiceConfig {
	return WorkLogServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
		MaxMediaPerLog:    20,
	}
}

// WorkLogService handles daily work log operations
type WorkLogService struct {
	workLogRepo worklog.WorkLogRepository
	storage     ObjectStorageService
	config      WorkLogServiceConfig
	logger      *zap.Logger
}

// NewWorkLogService creates a new WorkLogService
func NewWorkLogService(
	workLogRepo worklog.WorkLogRepository,
	storage ObjectStorageService,
	config WorkLogServiceConfig,
	logger *zap.Logger,
) *WorkLogService {
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = DefaultWorkLogServiceConfig().UploadURLExpiry
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = DefaultWorkLogServiceConfig().DownloadURLExpiry
	}
	if config.MaxMediaPerLog <= 0 {
		config.MaxMediaPerLog = DefaultWorkLogServiceConfig().MaxMediaPerLog
	}

	return &WorkLogService{
		workLogRepo: workLogRepo,
		storage:     storage,
		config:      config,
		logger:      logger,
	}
}

// Create creates a new daily work log
func (s *WorkLogService) Create(ctx context.Context, req CreateWorkLogRequest, createdBy uuid.UUID) (*WorkLogResponse, error) {
	log, err := worklog.NewDailyWorkLog(req.WorkDate, req.Description, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.workLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("Work log created",
		zap.String("work_log_id", log.ID.String()),
		zap.Time("work_date", log.WorkDate))

	return ToWorkLogResponse(log), nil
}

// GetByID returns a work log with presigned download URLs for its media
func (s *WorkLogService) GetByID(ctx context.Context, id uuid.UUID) (*WorkLogResponse, error) {
	log, err := s.workLogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	resp := ToWorkLogResponse(log)
	s.fillDownloadURLs(ctx, resp)

	return resp, nil
}

// List returns a paginated list of work logs
func (s *WorkLogService) List(ctx context.Context, filter WorkLogListFilter) (*WorkLogListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var logs []worklog.DailyWorkLog
	var err error

	if filter.From != nil && filter.To != nil {
		logs, err = s.workLogRepo.FindByDateRange(ctx, *filter.From, *filter.To)
	} else {
		logs, err = s.workLogRepo.FindAll(ctx, shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "work_date",
			OrderDir: "desc",
		})
	}
	if err != nil {
		return nil, err
	}

	total, err := s.workLogRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	responses := make([]*WorkLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToWorkLogResponse(&logs[i]))
	}

	return &WorkLogListResponse{
		WorkLogs: responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update updates a work log's description
func (s *WorkLogService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkLogRequest) (*WorkLogResponse, error) {
	log, err := s.workLogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	if req.Description != nil {
		if err := log.UpdateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.workLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	return ToWorkLogResponse(log), nil
}

// Delete deletes a work log and its media objects
func (s *WorkLogService) Delete(ctx context.Context, id uuid.UUID) error {
	log, err := s.workLogRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if log == nil {
		return shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	if err := s.workLogRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Storage cleanup is best effort; orphaned objects are harmless.
	if s.storage != nil {
		for i := range log.Media {
			if err := s.storage.DeleteObject(ctx, log.Media[i].URL); err != nil {
				s.logger.Warn("Failed to delete media object",
					zap.String("storage_key", log.Media[i].URL),
					zap.Error(err))
			}
		}
	}

	return nil
}

// RequestMediaUpload issues a presigned upload URL for a new media file
func (s *WorkLogService) RequestMediaUpload(ctx context.Context, logID uuid.UUID, req RequestMediaUploadRequest) (*MediaUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Media storage is not configured")
	}

	log, err := s.workLogRepo.FindByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	storageKey := buildStorageKey(logID, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &MediaUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// AttachMedia confirms an uploaded object as media on a work log
func (s *WorkLogService) AttachMedia(ctx context.Context, logID uuid.UUID, req AttachMediaRequest) (*WorkLogResponse, error) {
	log, err := s.workLogRepo.FindByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	if len(log.Media) >= s.config.MaxMediaPerLog {
		return nil, shared.NewDomainError("MEDIA_LIMIT_REACHED",
			fmt.Sprintf("A work log can have at most %d media files", s.config.MaxMediaPerLog))
	}

	if s.storage != nil {
		exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("MEDIA_NOT_UPLOADED", "No uploaded file found for the given storage key")
		}
	}

	if _, err := log.AttachMedia(worklog.MediaType(req.Type), req.StorageKey, req.Caption); err != nil {
		return nil, err
	}

	if err := s.workLogRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	resp := ToWorkLogResponse(log)
	s.fillDownloadURLs(ctx, resp)

	return resp, nil
}

// RemoveMedia detaches a media row and deletes its object
func (s *WorkLogService) RemoveMedia(ctx context.Context, logID, mediaID uuid.UUID) error {
	log, err := s.workLogRepo.FindByID(ctx, logID)
	if err != nil {
		return err
	}
	if log == nil {
		return shared.NewDomainError("WORK_LOG_NOT_FOUND", "Work log not found")
	}

	var storageKey string
	for i := range log.Media {
		if log.Media[i].ID == mediaID {
			storageKey = log.Media[i].URL
			break
		}
	}

	if err := log.RemoveMedia(mediaID); err != nil {
		return err
	}

	if err := s.workLogRepo.Save(ctx, log); err != nil {
		return err
	}

	if s.storage != nil && storageKey != "" {
		if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
			s.logger.Warn("Failed to delete media object",
				zap.String("storage_key", storageKey),
				zap.Error(err))
		}
	}

	return nil
}

func (s *WorkLogService) fillDownloadURLs(ctx context.Context, resp *WorkLogResponse) {
	if s.storage == nil {
		return
	}
	for i := range resp.Media {
		url, _, err := s.storage.GenerateDownloadURL(ctx, resp.Media[i].URL, s.config.DownloadURLExpiry)
		if err != nil {
			s.logger.Warn("Failed to presign media download",
				zap.String("storage_key", resp.Media[i].URL),
				zap.Error(err))
			continue
		}
		resp.Media[i].DownloadURL = url
	}
}

func buildStorageKey(logID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("worklogs/%s/%s%s", logID, uuid.New(), ext)
}
