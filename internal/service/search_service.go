package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/search"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type catalogProvider interface {
	Index(ctx context.Context) *search.Index
}

type activityRecorder interface {
	Add(ctx context.Context, clientID, courseCode string) error
}

// SearchService exposes the two course-code lookup strategies and the
// final selection step. Substring filtering drives autocomplete while
// typing; edit distance drives the "did you mean" list shown when a
// course has no results.
type SearchService struct {
	catalog        catalogProvider
	history        activityRecorder
	logger         *zap.Logger
	substringLimit int
	closestLimit   int
}

// NewSearchService constructs the service.
func NewSearchService(catalog catalogProvider, history activityRecorder, logger *zap.Logger, substringLimit, closestLimit int) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if substringLimit <= 0 {
		substringLimit = search.DefaultSubstringLimit
	}
	if closestLimit <= 0 {
		closestLimit = search.DefaultClosestLimit
	}
	return &SearchService{
		catalog:        catalog,
		history:        history,
		logger:         logger,
		substringLimit: substringLimit,
		closestLimit:   closestLimit,
	}
}

// Suggest returns catalog codes containing the query as a substring.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) []string {
	if limit <= 0 || limit > s.substringLimit {
		limit = s.substringLimit
	}
	return s.catalog.Index(ctx).FilterBySubstring(query, limit)
}

// Closest returns catalog codes ranked by edit distance to the query.
func (s *SearchService) Closest(ctx context.Context, query string, n int) []string {
	if n <= 0 || n > s.substringLimit {
		n = s.closestLimit
	}
	return s.catalog.Index(ctx).NearestMatches(query, n)
}

// Select finalises a search: normalises the code, records the activity
// and resolves the destination route for the active mode. A failed
// activity write never blocks the selection.
func (s *SearchService) Select(ctx context.Context, clientID, rawCode string, mode search.Mode) (search.Selection, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return search.Selection{}, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	if mode != search.ModeStats {
		mode = search.ModeExams
	}

	if s.history != nil && clientID != "" {
		if err := s.history.Add(ctx, clientID, code); err != nil {
			s.logger.Warn("failed to record recent activity",
				zap.String("client_id", clientID),
				zap.String("course_code", code),
				zap.Error(err),
			)
		}
	}

	return search.Selection{Code: code, Route: search.RouteFor(code, mode)}, nil
}
