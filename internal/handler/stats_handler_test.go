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
	"github.com/liu-tentor/exam-archive-api/internal/service"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type statsServiceMock struct {
	statsResp  *models.CourseStats
	statsErr   error
	exportResp *service.ExportFile
	exportErr  error
	gotFormat  service.ExportFormat
}

func (m *statsServiceMock) CourseStats(ctx context.Context, courseCode string) (*models.CourseStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.statsResp, nil
}

func (m *statsServiceMock) Export(ctx context.Context, courseCode string, format service.ExportFormat) (*service.ExportFile, error) {
	m.gotFormat = format
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return m.exportResp, nil
}

func TestStatsHandlerCourseStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStatsHandler(&statsServiceMock{statsResp: &models.CourseStats{
		CourseCode:  "TDDD97",
		AveragePass: 65.0,
	}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/TDDD97/stats", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseCode", Value: "TDDD97"}}

	handler.CourseStats(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.InDelta(t, 65.0, data["average_pass_rate"], 0.001)
}

func TestStatsHandlerExportDefaultsToCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &statsServiceMock{exportResp: &service.ExportFile{
		Filename:    "TDDD97_stats.csv",
		ContentType: "text/csv",
		Data:        []byte("Exam ID,Exam Date\n"),
	}}
	handler := NewStatsHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/TDDD97/stats/export", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseCode", Value: "TDDD97"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportCSV, mock.gotFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "TDDD97_stats.csv")
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestStatsHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStatsHandler(&statsServiceMock{exportErr: appErrors.ErrForbidden})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/TDDD97/stats/export?format=pdf", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseCode", Value: "TDDD97"}}

	handler.Export(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
