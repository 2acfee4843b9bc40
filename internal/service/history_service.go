package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/repository"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type historyStore interface {
	Get(ctx context.Context, clientID string) (*repository.HistoryEnvelope, error)
	Set(ctx context.Context, clientID string, env *repository.HistoryEnvelope) error
	Delete(ctx context.Context, clientID string) error
}

// HistoryService maintains each client's recently searched course codes.
// The list holds at most one entry per code; re-searching moves the code
// to the front with a fresh timestamp. Every mutation is persisted under
// a schema version, and a version mismatch on load wipes the stored list.
type HistoryService struct {
	store   historyStore
	version string
	logger  *zap.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewHistoryService constructs the service.
func NewHistoryService(store historyStore, version string, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{store: store, version: version, logger: logger, now: time.Now}
}

// Add records a search for the given course code.
func (s *HistoryService) Add(ctx context.Context, clientID, courseCode string) error {
	code := strings.ToUpper(strings.TrimSpace(courseCode))
	if code == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	if clientID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "client id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.load(ctx, clientID)
	if err != nil {
		return err
	}

	next := make([]models.RecentActivity, 0, len(activities)+1)
	next = append(next, models.RecentActivity{CourseCode: code, Timestamp: s.now().UnixMilli()})
	for _, a := range activities {
		if a.CourseCode != code {
			next = append(next, a)
		}
	}

	return s.store.Set(ctx, clientID, &repository.HistoryEnvelope{Version: s.version, Activities: next})
}

// List returns a client's activities, most recent first. A limit of 0
// returns the full list.
func (s *HistoryService) List(ctx context.Context, clientID string, limit int) ([]models.RecentActivity, error) {
	if clientID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "client id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// Clear wipes a client's stored activity list.
func (s *HistoryService) Clear(ctx context.Context, clientID string) error {
	if clientID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "client id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Delete(ctx, clientID)
}

// load reads and normalises the stored envelope. Anything written under
// a different schema version is discarded rather than migrated.
func (s *HistoryService) load(ctx context.Context, clientID string) ([]models.RecentActivity, error) {
	env, err := s.store.Get(ctx, clientID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent activity")
	}
	if len(env.Activities) == 0 {
		return nil, nil
	}
	if env.Version != s.version {
		s.logger.Info("recent activity version mismatch, wiping stored list",
			zap.String("stored", env.Version),
			zap.String("expected", s.version),
		)
		if err := s.store.Delete(ctx, clientID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset recent activity")
		}
		return nil, nil
	}

	activities := append([]models.RecentActivity(nil), env.Activities...)
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})
	return activities, nil
}
