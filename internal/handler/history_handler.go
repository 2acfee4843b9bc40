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

type historyService interface {
	Add(ctx context.Context, clientID, courseCode string) error
	List(ctx context.Context, clientID string, limit int) ([]models.RecentActivity, error)
	Clear(ctx context.Context, clientID string) error
}

// HistoryHandler exposes the per-client recent-activity store.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

type addActivityRequest struct {
	CourseCode string `json:"courseCode" binding:"required"`
}

// List godoc
// @Summary Recently searched courses
// @Tags RecentActivity
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param X-Client-ID header string true "Client identity"
// @Success 200 {object} response.Envelope
// @Router /recent-activity [get]
func (h *HistoryHandler) List(c *gin.Context) {
	clientID := clientIDFrom(c)
	if clientID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "X-Client-ID header is required"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	activities, err := h.service.List(c.Request.Context(), clientID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if activities == nil {
		activities = []models.RecentActivity{}
	}
	response.JSON(c, http.StatusOK, gin.H{"activities": activities}, nil)
}

// Add godoc
// @Summary Record a course search
// @Tags RecentActivity
// @Accept json
// @Produce json
// @Param X-Client-ID header string true "Client identity"
// @Param request body addActivityRequest true "Course code"
// @Success 201 {object} response.Envelope
// @Router /recent-activity [post]
func (h *HistoryHandler) Add(c *gin.Context) {
	clientID := clientIDFrom(c)
	if clientID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "X-Client-ID header is required"))
		return
	}
	var req addActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseCode is required"))
		return
	}
	if err := h.service.Add(c.Request.Context(), clientID, req.CourseCode); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"courseCode": req.CourseCode})
}

// Clear godoc
// @Summary Wipe the recent-activity list
// @Tags RecentActivity
// @Param X-Client-ID header string true "Client identity"
// @Success 204
// @Router /recent-activity [delete]
func (h *HistoryHandler) Clear(c *gin.Context) {
	clientID := clientIDFrom(c)
	if clientID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "X-Client-ID header is required"))
		return
	}
	if err := h.service.Clear(c.Request.Context(), clientID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
