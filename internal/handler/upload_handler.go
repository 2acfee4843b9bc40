package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/service"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type uploadService interface {
	Process(ctx context.Context, courseCode string, files []service.UploadFile) (*models.UploadResult, error)
}

// UploadHandler receives community exam submissions.
type UploadHandler struct {
	service uploadService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service uploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload godoc
// @Summary Submit exam PDFs for review
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param courseCode formData string true "Course code"
// @Param files formData file true "PDF files"
// @Success 201 {object} response.Envelope
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "multipart form is required"))
		return
	}
	courseCode := c.PostForm("courseCode")
	headers := form.File["files"]
	if len(headers) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "at least one file is required"))
		return
	}

	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close() //nolint:errcheck
		}
	}()
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file"))
			return
		}
		opened = append(opened, src)
		files = append(files, service.UploadFile{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  src,
		})
	}

	result, err := h.service.Process(c.Request.Context(), courseCode, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.Failed != "" {
		// Partial failure: committed files stay committed, so the
		// aggregate is reported rather than a bare error status.
		status = http.StatusMultiStatus
	}
	response.JSON(c, status, result, nil)
}
