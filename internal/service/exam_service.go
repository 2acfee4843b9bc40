package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type examClient interface {
	GetCourseExams(ctx context.Context, courseCode string) (*models.CourseExamResponse, error)
	GetExam(ctx context.Context, examID int64) (*models.ExamWithSolutions, error)
}

// ExamService proxies the upstream exam API behind a short-lived cache.
// Repeated lookups for the same course within the TTL are served locally,
// the read path never mutates upstream data beyond filling in a missing
// pass rate.
type ExamService struct {
	client  examClient
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewExamService constructs the service.
func NewExamService(client examClient, cache *CacheService, metrics *MetricsService, logger *zap.Logger, ttl time.Duration) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ExamService{client: client, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// GetCourseExams returns the exam listing for a course, cached per course code.
func (s *ExamService) GetCourseExams(ctx context.Context, courseCode string) (*models.CourseExamResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(courseCode))
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}

	key := "exams:course:" + code
	var cached models.CourseExamResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	start := time.Now()
	resp, err := s.client.GetCourseExams(ctx, code)
	if s.metrics != nil {
		s.metrics.ObserveUpstreamRequest("course_exams", err, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	for i := range resp.Exams {
		fillPassRate(&resp.Exams[i])
	}

	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		s.logger.Warn("failed to cache course exams", zap.String("course_code", code), zap.Error(err))
	}
	return resp, nil
}

// GetExam returns one exam with its solutions, cached per exam id.
func (s *ExamService) GetExam(ctx context.Context, examID int64) (*models.ExamWithSolutions, error) {
	if examID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam id must be positive")
	}

	key := fmt.Sprintf("exams:exam:%d", examID)
	var cached models.ExamWithSolutions
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	start := time.Now()
	resp, err := s.client.GetExam(ctx, examID)
	if s.metrics != nil {
		s.metrics.ObserveUpstreamRequest("exam_detail", err, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	fillPassRate(&resp.Exam)

	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		s.logger.Warn("failed to cache exam", zap.Int64("exam_id", examID), zap.Error(err))
	}
	return resp, nil
}

// fillPassRate backfills pass_rate from the grade distribution when the
// upstream omits it.
func fillPassRate(exam *models.Exam) {
	if exam.PassRate != nil {
		return
	}
	if rate, ok := exam.ComputedPassRate(); ok {
		exam.PassRate = &rate
	}
}
