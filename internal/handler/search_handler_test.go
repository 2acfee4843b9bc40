package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liu-tentor/exam-archive-api/internal/search"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type searchServiceMock struct {
	suggestResp []string
	closestResp []string
	selectResp  search.Selection
	selectErr   error
	selectedID  string
}

func (m *searchServiceMock) Suggest(ctx context.Context, query string, limit int) []string {
	return m.suggestResp
}

func (m *searchServiceMock) Closest(ctx context.Context, query string, n int) []string {
	return m.closestResp
}

func (m *searchServiceMock) Select(ctx context.Context, clientID, rawCode string, mode search.Mode) (search.Selection, error) {
	m.selectedID = clientID
	if m.selectErr != nil {
		return search.Selection{}, m.selectErr
	}
	return m.selectResp, nil
}

func TestSearchHandlerSuggest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(&searchServiceMock{suggestResp: []string{"TDDD97", "TDDD98"}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/suggest?q=TDDD", nil)
	c.Request = req

	handler.Suggest(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Len(t, data["courses"], 2)
}

func TestSearchHandlerClosestRequiresQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(&searchServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/closest", nil)
	c.Request = req

	handler.Closest(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandlerSelect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &searchServiceMock{selectResp: search.Selection{Code: "TDDD97", Route: "/search/TDDD97"}}
	handler := NewSearchHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(selectRequest{CourseCode: "tddd97"})
	req, _ := http.NewRequest(http.MethodPost, "/search/select", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", "client-1")
	c.Request = req

	handler.Select(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-1", mock.selectedID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, "/search/TDDD97", data["route"])
}

func TestSearchHandlerSelectInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(&searchServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/search/select", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Select(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandlerSelectServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(&searchServiceMock{selectErr: appErrors.ErrValidation})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(selectRequest{CourseCode: "   "})
	req, _ := http.NewRequest(http.MethodPost, "/search/select", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Select(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
