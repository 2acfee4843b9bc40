package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type examService interface {
	GetCourseExams(ctx context.Context, courseCode string) (*models.CourseExamResponse, error)
	GetExam(ctx context.Context, examID int64) (*models.ExamWithSolutions, error)
}

// ExamHandler proxies exam data from the upstream API.
type ExamHandler struct {
	service examService
}

// NewExamHandler constructs the handler.
func NewExamHandler(service examService) *ExamHandler {
	return &ExamHandler{service: service}
}

// CourseExams godoc
// @Summary List exams for a course
// @Tags Exams
// @Produce json
// @Param courseCode path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseCode}/exams [get]
func (h *ExamHandler) CourseExams(c *gin.Context) {
	resp, err := h.service.GetCourseExams(c.Request.Context(), c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ExamDetail godoc
// @Summary Fetch one exam with solutions
// @Tags Exams
// @Produce json
// @Param examId path int true "Exam id"
// @Success 200 {object} response.Envelope
// @Router /exams/{examId} [get]
func (h *ExamHandler) ExamDetail(c *gin.Context) {
	examID, err := strconv.ParseInt(c.Param("examId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "examId must be an integer"))
		return
	}
	resp, err := h.service.GetExam(c.Request.Context(), examID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
