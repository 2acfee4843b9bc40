package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type prefsService interface {
	Get(ctx context.Context, clientID string) (models.Preferences, error)
	Update(ctx context.Context, clientID string, prefs models.Preferences) (models.Preferences, error)
}

// PrefsHandler exposes per-client interface preferences.
type PrefsHandler struct {
	service prefsService
}

// NewPrefsHandler constructs the handler.
func NewPrefsHandler(service prefsService) *PrefsHandler {
	return &PrefsHandler{service: service}
}

// Get godoc
// @Summary Client preferences
// @Tags Preferences
// @Produce json
// @Param X-Client-ID header string false "Client identity"
// @Success 200 {object} response.Envelope
// @Router /preferences [get]
func (h *PrefsHandler) Get(c *gin.Context) {
	prefs, err := h.service.Get(c.Request.Context(), clientIDFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Update godoc
// @Summary Update client preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param X-Client-ID header string true "Client identity"
// @Param request body models.Preferences true "Preferences"
// @Success 200 {object} response.Envelope
// @Router /preferences [put]
func (h *PrefsHandler) Update(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid preferences payload"))
		return
	}
	updated, err := h.service.Update(c.Request.Context(), clientIDFrom(c), prefs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}
