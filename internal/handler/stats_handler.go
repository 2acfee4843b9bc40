package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type statsService interface {
	CourseStats(ctx context.Context, courseCode string) (*models.CourseStats, error)
	Export(ctx context.Context, courseCode string, format service.ExportFormat) (*service.ExportFile, error)
}

// StatsHandler exposes pass-rate summaries and exports.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// CourseStats godoc
// @Summary Pass-rate statistics for a course
// @Tags Statistics
// @Produce json
// @Param courseCode path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseCode}/stats [get]
func (h *StatsHandler) CourseStats(c *gin.Context) {
	stats, err := h.service.CourseStats(c.Request.Context(), c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export godoc
// @Summary Download course statistics as CSV or PDF
// @Tags Statistics
// @Produce octet-stream
// @Param courseCode path string true "Course code"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /courses/{courseCode}/stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	file, err := h.service.Export(c.Request.Context(), c.Param("courseCode"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
