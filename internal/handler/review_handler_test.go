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

	"github.com/liu-tentor/exam-archive-api/internal/middleware"
	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type reviewServiceMock struct {
	listResp    []models.PendingUpload
	approveResp *models.PendingUpload
	approveErr  error
	rejectErr   error
	urlResp     string
	downloadErr error
	gotFilter   models.UploadFilter
}

func (m *reviewServiceMock) List(ctx context.Context, filter models.UploadFilter) ([]models.PendingUpload, error) {
	m.gotFilter = filter
	return m.listResp, nil
}

func (m *reviewServiceMock) Approve(ctx context.Context, id string) (*models.PendingUpload, error) {
	if m.approveErr != nil {
		return nil, m.approveErr
	}
	return m.approveResp, nil
}

func (m *reviewServiceMock) Reject(ctx context.Context, id string) error {
	return m.rejectErr
}

func (m *reviewServiceMock) DownloadURL(ctx context.Context, id string) (string, error) {
	return m.urlResp, nil
}

func (m *reviewServiceMock) Download(ctx context.Context, id, token string) (*service.ReviewDownload, error) {
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	return nil, appErrors.ErrInternal
}

func asAdmin(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "admin@liutentor.se", Role: models.RoleAdmin})
}

func TestReviewHandlerListRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/review/uploads", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &reviewServiceMock{listResp: []models.PendingUpload{{CourseCode: "TDDD97"}}}
	handler := NewReviewHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/review/uploads?status=PENDING&limit=10", nil)
	c.Request = req
	asAdmin(c)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.UploadStatusPending, mock.gotFilter.Status)
	assert.Equal(t, 10, mock.gotFilter.Limit)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Len(t, data["uploads"], 1)
}

func TestReviewHandlerApproveNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{approveErr: appErrors.ErrNotFound})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/review/uploads/missing/approve", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	asAdmin(c)

	handler.Approve(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandlerRejectConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{rejectErr: appErrors.ErrConflict})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/review/uploads/u-1/reject", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}
	asAdmin(c)

	handler.Reject(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewHandlerReject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/review/uploads/u-1/reject", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}
	asAdmin(c)

	handler.Reject(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReviewHandlerDownloadURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{urlResp: "http://localhost/review/uploads/u-1/download?token=abc"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/review/uploads/u-1/download-url", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}
	asAdmin(c)

	handler.DownloadURL(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Contains(t, data["url"], "token=abc")
}

func TestReviewHandlerDownloadRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/review/uploads/u-1/download", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}

	handler.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandlerDownloadBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(&reviewServiceMock{downloadErr: appErrors.ErrUnauthorized})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/review/uploads/u-1/download?token=bogus", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}

	handler.Download(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
