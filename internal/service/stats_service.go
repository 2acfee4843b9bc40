package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/export"
)

// ExportFormat selects the rendering for a statistics export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportFile bundles rendered export bytes with response metadata.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StatsService derives per-course pass-rate summaries from the exam
// listing and renders them for download.
type StatsService struct {
	exams         *ExamService
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
	exportEnabled bool
}

// NewStatsService constructs the service.
func NewStatsService(exams *ExamService, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger, exportEnabled bool) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{exams: exams, csv: csv, pdf: pdf, logger: logger, exportEnabled: exportEnabled}
}

// CourseStats builds the statistics summary for one course.
func (s *StatsService) CourseStats(ctx context.Context, courseCode string) (*models.CourseStats, error) {
	resp, err := s.exams.GetCourseExams(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	stats := &models.CourseStats{
		CourseCode:    resp.CourseCode,
		CourseNameSwe: resp.CourseNameSwe,
		CourseNameEng: resp.CourseNameEng,
		Sittings:      make([]models.SittingStats, 0, len(resp.Exams)),
	}

	total := 0.0
	counted := 0
	for _, exam := range resp.Exams {
		sitting := models.SittingStats{
			ExamID:       exam.ID,
			ExamDate:     exam.ExamDate,
			Distribution: exam.Statistics,
		}
		if rate, ok := exam.ComputedPassRate(); ok {
			sitting.PassRate = rate
			sitting.HasStats = true
			total += rate
			counted++
		}
		stats.Sittings = append(stats.Sittings, sitting)
	}
	if counted > 0 {
		stats.AveragePass = total / float64(counted)
	}
	return stats, nil
}

// Export renders the course statistics as CSV or PDF.
func (s *StatsService) Export(ctx context.Context, courseCode string, format ExportFormat) (*ExportFile, error) {
	if !s.exportEnabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "statistics export is disabled")
	}

	stats, err := s.CourseStats(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	subtitle := stats.CourseNameSwe
	if stats.CourseNameEng != "" {
		subtitle = fmt.Sprintf("%s / %s", stats.CourseNameSwe, stats.CourseNameEng)
	}
	table := export.Table{
		Title:       fmt.Sprintf("%s pass rates", stats.CourseCode),
		Subtitle:    subtitle,
		GeneratedAt: time.Now().UTC(),
		Columns: []export.Column{
			{Key: "exam_id", Label: "Exam ID"},
			{Key: "exam_date", Label: "Exam Date"},
			{Key: "pass_rate", Label: "Pass Rate (%)", Align: "R"},
			{Key: "has_stats", Label: "Has Statistics"},
		},
		Rows: make([]map[string]string, 0, len(stats.Sittings)),
	}
	for _, sitting := range stats.Sittings {
		table.Rows = append(table.Rows, map[string]string{
			"exam_id":   strconv.FormatInt(sitting.ExamID, 10),
			"exam_date": sitting.ExamDate,
			"pass_rate": fmt.Sprintf("%.1f", sitting.PassRate),
			"has_stats": strconv.FormatBool(sitting.HasStats),
		})
	}

	switch format {
	case ExportCSV:
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s_stats.csv", stats.CourseCode),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportPDF:
		data, err := s.pdf.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s_stats.pdf", stats.CourseCode),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
