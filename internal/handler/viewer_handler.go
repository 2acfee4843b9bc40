package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type viewerService interface {
	CreateSession() *models.ViewerSession
	GetSession(id string) (*models.ViewerSession, error)
	UpdateSlot(sessionID string, slot models.ViewerSlot, update service.SlotUpdate) (*models.DocumentViewState, error)
}

// ViewerHandler exposes the document viewer state machine.
type ViewerHandler struct {
	service viewerService
}

// NewViewerHandler constructs the handler.
func NewViewerHandler(service viewerService) *ViewerHandler {
	return &ViewerHandler{service: service}
}

// CreateSession godoc
// @Summary Open a viewer session
// @Tags Viewer
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /viewer/sessions [post]
func (h *ViewerHandler) CreateSession(c *gin.Context) {
	session := h.service.CreateSession()
	response.Created(c, session)
}

// GetSession godoc
// @Summary Fetch viewer session state
// @Tags Viewer
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response.Envelope
// @Router /viewer/sessions/{id} [get]
func (h *ViewerHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// UpdateSlot godoc
// @Summary Mutate one viewer pane
// @Tags Viewer
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param slot path string true "exam or solution"
// @Param request body service.SlotUpdate true "Partial update"
// @Success 200 {object} response.Envelope
// @Router /viewer/sessions/{id}/{slot} [patch]
func (h *ViewerHandler) UpdateSlot(c *gin.Context) {
	var update service.SlotUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid viewer update payload"))
		return
	}
	state, err := h.service.UpdateSlot(c.Param("id"), models.ViewerSlot(c.Param("slot")), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}
