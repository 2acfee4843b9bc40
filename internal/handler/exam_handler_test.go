package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type examServiceMock struct {
	courseResp *models.CourseExamResponse
	courseErr  error
	examResp   *models.ExamWithSolutions
	examErr    error
}

func (m *examServiceMock) GetCourseExams(ctx context.Context, courseCode string) (*models.CourseExamResponse, error) {
	if m.courseErr != nil {
		return nil, m.courseErr
	}
	return m.courseResp, nil
}

func (m *examServiceMock) GetExam(ctx context.Context, examID int64) (*models.ExamWithSolutions, error) {
	if m.examErr != nil {
		return nil, m.examErr
	}
	return m.examResp, nil
}

func TestExamHandlerCourseExams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(&examServiceMock{courseResp: &models.CourseExamResponse{
		CourseCode: "TDDD97",
		Exams:      []models.Exam{{ID: 1, CourseCode: "TDDD97"}},
	}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/TDDD97/exams", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseCode", Value: "TDDD97"}}

	handler.CourseExams(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "TDDD97", data["course_code"])
}

func TestExamHandlerCourseExamsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(&examServiceMock{courseErr: appErrors.ErrNotFound})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/XXXXXX/exams", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseCode", Value: "XXXXXX"}}

	handler.CourseExams(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExamHandlerExamDetailRejectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(&examServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exams/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "examId", Value: "abc"}}

	handler.ExamDetail(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExamHandlerExamDetailUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(&examServiceMock{examErr: appErrors.ErrUpstream})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exams/42", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "examId", Value: "42"}}

	handler.ExamDetail(c)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
