package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/search"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
	"github.com/liu-tentor/exam-archive-api/pkg/response"
)

type searchService interface {
	Suggest(ctx context.Context, query string, limit int) []string
	Closest(ctx context.Context, query string, n int) []string
	Select(ctx context.Context, clientID, rawCode string, mode search.Mode) (search.Selection, error)
}

// SearchHandler exposes course-code lookup endpoints.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

type selectRequest struct {
	CourseCode string `json:"courseCode" binding:"required"`
	Mode       string `json:"mode"`
}

// Suggest godoc
// @Summary Course code autocomplete
// @Tags Search
// @Produce json
// @Param q query string false "Substring query"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /courses/suggest [get]
func (h *SearchHandler) Suggest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	codes := h.service.Suggest(c.Request.Context(), c.Query("q"), limit)
	response.JSON(c, http.StatusOK, gin.H{"courses": codes}, nil)
}

// Closest godoc
// @Summary Closest course codes by edit distance
// @Tags Search
// @Produce json
// @Param q query string true "Course code query"
// @Param n query int false "Number of results"
// @Success 200 {object} response.Envelope
// @Router /courses/closest [get]
func (h *SearchHandler) Closest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "q is required"))
		return
	}
	n, _ := strconv.Atoi(c.Query("n"))
	codes := h.service.Closest(c.Request.Context(), query, n)
	response.JSON(c, http.StatusOK, gin.H{"courses": codes}, nil)
}

// Select godoc
// @Summary Finalise a course search
// @Tags Search
// @Accept json
// @Produce json
// @Param request body selectRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /search/select [post]
func (h *SearchHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseCode is required"))
		return
	}
	selection, err := h.service.Select(c.Request.Context(), clientIDFrom(c), req.CourseCode, search.Mode(req.Mode))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"courseCode": selection.Code,
		"route":      selection.Route,
	}, nil)
}
