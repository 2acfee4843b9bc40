package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type reviewStore interface {
	GetByID(ctx context.Context, id string) (*models.PendingUpload, error)
	List(ctx context.Context, filter models.UploadFilter) ([]models.PendingUpload, error)
	UpdateStatus(ctx context.Context, id string, status models.UploadStatus, reviewedAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]models.PendingUpload, error)
}

type reviewFileStorage interface {
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type reviewSigner interface {
	Generate(id, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (id, relPath string, expiresAt time.Time, err error)
}

// ReviewDownload bundles a stored PDF handle for streaming to a reviewer.
type ReviewDownload struct {
	File      *os.File
	Filename  string
	SizeBytes int64
	ExpiresAt time.Time
}

// ReviewService manages the moderation queue for community uploads.
// Approving publishes the row, rejecting removes both the row and the
// stored file.
type ReviewService struct {
	repo      reviewStore
	storage   reviewFileStorage
	signer    reviewSigner
	logger    *zap.Logger
	apiPrefix string
}

// NewReviewService constructs the service.
func NewReviewService(repo reviewStore, storage reviewFileStorage, signer reviewSigner, logger *zap.Logger, apiPrefix string) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiPrefix == "" {
		apiPrefix = "/api/v1"
	}
	return &ReviewService{repo: repo, storage: storage, signer: signer, logger: logger, apiPrefix: apiPrefix}
}

// List returns queue entries matching the filter, newest first.
func (s *ReviewService) List(ctx context.Context, filter models.UploadFilter) ([]models.PendingUpload, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending uploads")
	}
	return items, nil
}

// Approve marks a pending upload as accepted for publication.
func (s *ReviewService) Approve(ctx context.Context, id string) (*models.PendingUpload, error) {
	if err := s.repo.UpdateStatus(ctx, id, models.UploadStatusApproved, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no pending upload with that id")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve upload")
	}
	upload, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approved upload")
	}
	return upload, nil
}

// Reject removes a pending upload together with its stored file.
func (s *ReviewService) Reject(ctx context.Context, id string) error {
	upload, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no pending upload with that id")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load upload")
	}
	if upload.Status != models.UploadStatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "upload has already been reviewed")
	}

	if err := s.storage.Delete(upload.StoredPath); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete stored file")
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete upload row")
	}
	return nil
}

// DownloadURL generates a signed, expiring link for reviewing a PDF.
func (s *ReviewService) DownloadURL(ctx context.Context, id string) (string, error) {
	if s.signer == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "download signer unavailable")
	}
	upload, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "no pending upload with that id")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load upload")
	}
	token, _, err := s.signer.Generate(upload.ID, upload.StoredPath)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate download token")
	}
	base := strings.TrimRight(s.apiPrefix, "/")
	return fmt.Sprintf("%s/review/uploads/%s/download?token=%s", base, upload.ID, token), nil
}

// Download validates the token and opens the stored file.
func (s *ReviewService) Download(ctx context.Context, id, token string) (*ReviewDownload, error) {
	if s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "download signer unavailable")
	}
	upload, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no pending upload with that id")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load upload")
	}

	uploadID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired token")
	}
	if uploadID != upload.ID || relPath != upload.StoredPath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open stored file")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read stored file metadata")
	}
	return &ReviewDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		SizeBytes: info.Size(),
		ExpiresAt: expiresAt,
	}, nil
}

// PurgeReviewed deletes reviewed rows older than the cutoff along with
// any stored files still on disk. Run by the cleanup job.
func (s *ReviewService) PurgeReviewed(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.repo.ListOlderThan(ctx, cutoff)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviewed uploads")
	}
	purged := 0
	for _, upload := range stale {
		if err := s.storage.Delete(upload.StoredPath); err != nil {
			s.logger.Warn("failed to delete stale upload file",
				zap.String("stored_path", upload.StoredPath),
				zap.Error(err),
			)
			continue
		}
		if err := s.repo.Delete(ctx, upload.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to delete stale upload row",
				zap.String("upload_id", upload.ID),
				zap.Error(err),
			)
			continue
		}
		purged++
	}
	return purged, nil
}
