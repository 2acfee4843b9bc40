package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type reviewService interface {
	List(ctx context.Context, filter models.UploadFilter) ([]models.PendingUpload, error)
	Approve(ctx context.Context, id string) (*models.PendingUpload, error)
	Reject(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string) (string, error)
	Download(ctx context.Context, id, token string) (*service.ReviewDownload, error)
}

// ReviewHandler exposes the upload moderation queue.
type ReviewHandler struct {
	service reviewService
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(service reviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List godoc
// @Summary List uploads in the review queue
// @Tags Review
// @Produce json
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param courseCode query string false "Course code filter"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /review/uploads [get]
func (h *ReviewHandler) List(c *gin.Context) {
	if claimsFromContext(c) == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := models.UploadFilter{
		Status:     models.UploadStatus(c.Query("status")),
		CourseCode: c.Query("courseCode"),
		Limit:      limit,
	}
	uploads, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"uploads": uploads}, nil)
}

// Approve godoc
// @Summary Approve a pending upload
// @Tags Review
// @Produce json
// @Param id path string true "Upload id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /review/uploads/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	if claimsFromContext(c) == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	upload, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, upload, nil)
}

// Reject godoc
// @Summary Reject a pending upload
// @Tags Review
// @Param id path string true "Upload id"
// @Success 204
// @Security BearerAuth
// @Router /review/uploads/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	if claimsFromContext(c) == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Reject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadURL godoc
// @Summary Signed download link for a queued PDF
// @Tags Review
// @Produce json
// @Param id path string true "Upload id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /review/uploads/{id}/download-url [get]
func (h *ReviewHandler) DownloadURL(c *gin.Context) {
	if claimsFromContext(c) == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	url, err := h.service.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url}, nil)
}

// Download godoc
// @Summary Stream a queued PDF using a signed token
// @Tags Review
// @Produce application/pdf
// @Param id path string true "Upload id"
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /review/uploads/{id}/download [get]
func (h *ReviewHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	download, err := h.service.Download(c.Request.Context(), c.Param("id"), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+download.Filename+`"`)
	c.DataFromReader(http.StatusOK, download.SizeBytes, "application/pdf", download.File, nil)
}
