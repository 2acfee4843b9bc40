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

	"github.com/liu-tentor/exam-archive-api/internal/middleware"
	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type prefsServiceMock struct {
	getResp    models.Preferences
	updateResp models.Preferences
	updateErr  error
	gotID      string
}

func (m *prefsServiceMock) Get(ctx context.Context, clientID string) (models.Preferences, error) {
	m.gotID = clientID
	return m.getResp, nil
}

func (m *prefsServiceMock) Update(ctx context.Context, clientID string, prefs models.Preferences) (models.Preferences, error) {
	m.gotID = clientID
	if m.updateErr != nil {
		return models.Preferences{}, m.updateErr
	}
	return m.updateResp, nil
}

func TestPrefsHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &prefsServiceMock{getResp: models.DefaultPreferences()}
	handler := NewPrefsHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/preferences", nil)
	req.Header.Set(middleware.ClientIDHeader, "client-1")
	c.Request = req

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-1", mock.gotID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "sv", data["language"])
	assert.Equal(t, "system", data["theme"])
}

func TestPrefsHandlerUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &prefsServiceMock{updateResp: models.Preferences{Language: "en", Theme: "dark"}}
	handler := NewPrefsHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.Preferences{Language: "en", Theme: "dark"})
	req, _ := http.NewRequest(http.MethodPut, "/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, "client-1")
	c.Request = req

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, "dark", data["theme"])
}

func TestPrefsHandlerUpdateInvalidValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPrefsHandler(&prefsServiceMock{updateErr: appErrors.ErrValidation})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.Preferences{Language: "de", Theme: "dark"})
	req, _ := http.NewRequest(http.MethodPut, "/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, "client-1")
	c.Request = req

	handler.Update(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
