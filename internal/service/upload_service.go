package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/upload"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type uploadStore interface {
	Create(ctx context.Context, upload *models.PendingUpload) error
}

type uploadFileStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// UploadFile carries one submitted PDF.
type UploadFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UploadServiceConfig holds validation parameters and URL construction.
type UploadServiceConfig struct {
	PublicBaseURL string
	MaxFileSize   int64
}

// UploadService commits community-submitted exam PDFs into the review
// queue. Each file is a two-step commit: the PDF is stored first, then
// the metadata row is inserted; a failed insert deletes the stored file
// so the queue never references a row without a file or vice versa.
type UploadService struct {
	repo    uploadStore
	storage uploadFileStorage
	logger  *zap.Logger
	cfg     UploadServiceConfig
}

// NewUploadService constructs the service.
func NewUploadService(repo uploadStore, storage uploadFileStorage, logger *zap.Logger, cfg UploadServiceConfig) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 20 * 1024 * 1024
	}
	return &UploadService{repo: repo, storage: storage, logger: logger, cfg: cfg}
}

// Process commits the submitted files in order, stopping at the first
// failure. Files committed before the failure stay committed.
func (s *UploadService) Process(ctx context.Context, courseCode string, files []UploadFile) (*models.UploadResult, error) {
	code := strings.ToUpper(strings.TrimSpace(courseCode))
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	if len(files) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one file is required")
	}

	result := &models.UploadResult{Uploaded: make([]models.PendingUpload, 0, len(files))}
	for _, file := range files {
		committed, err := s.commitFile(ctx, code, file)
		if err != nil {
			result.Failed = file.Filename
			result.Error = appErrors.FromError(err).Message
			s.logger.Warn("upload stopped at failing file",
				zap.String("course_code", code),
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			break
		}
		result.Uploaded = append(result.Uploaded, *committed)
	}
	return result, nil
}

func (s *UploadService) commitFile(ctx context.Context, courseCode string, file UploadFile) (*models.PendingUpload, error) {
	if !strings.EqualFold(path.Ext(file.Filename), ".pdf") {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not a PDF file", file.Filename))
	}
	if file.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the %d byte limit", file.Filename, s.cfg.MaxFileSize))
	}

	examDate, ok := upload.ParseDate(file.Filename)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("could not find a date in the filename: %s", file.Filename))
	}
	role := upload.ClassifyRole(file.Filename)
	storedPath := "public/" + upload.NormalisedFilename(courseCode, examDate, role)

	if _, err := s.storage.SaveStream(storedPath, file.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store uploaded file")
	}

	row := &models.PendingUpload{
		CourseCode:       courseCode,
		OriginalFilename: file.Filename,
		StoredPath:       storedPath,
		PDFURL:           s.publicURL(storedPath),
		ExamDate:         examDate,
		Role:             role,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		// Compensate: the stored file must not outlive a failed insert.
		if delErr := s.storage.Delete(storedPath); delErr != nil {
			s.logger.Error("failed to roll back stored file after insert failure",
				zap.String("stored_path", storedPath),
				zap.Error(delErr),
			)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record upload metadata")
	}
	return row, nil
}

func (s *UploadService) publicURL(storedPath string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		return "/" + storedPath
	}
	return base + "/" + storedPath
}
