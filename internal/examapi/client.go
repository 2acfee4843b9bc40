package examapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

// Client talks to the upstream exam-data API. Responses are passed
// through untouched; the gateway owns no exam data itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// GetCourseExams fetches the exam listing for a course code.
func (c *Client) GetCourseExams(ctx context.Context, courseCode string) (*models.CourseExamResponse, error) {
	var out models.CourseExamResponse
	path := fmt.Sprintf("/courses/%s/exams", url.PathEscape(courseCode))
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetExam fetches a single exam with its solution documents.
func (c *Client) GetExam(ctx context.Context, examID int64) (*models.ExamWithSolutions, error) {
	var out models.ExamWithSolutions
	if err := c.getJSON(ctx, fmt.Sprintf("/exams/%d", examID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("exam API request failed", zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("exam API returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return appErrors.Wrap(
			fmt.Errorf("exam API status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "could not decode exam API response")
	}
	return nil
}
