package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type prefsStore interface {
	Get(ctx context.Context, clientID string) (models.Preferences, bool, error)
	Set(ctx context.Context, clientID string, prefs models.Preferences) error
}

// PrefsService stores per-client interface preferences. First-time
// clients get Swedish and the system theme.
type PrefsService struct {
	store  prefsStore
	logger *zap.Logger
}

// NewPrefsService constructs the service.
func NewPrefsService(store prefsStore, logger *zap.Logger) *PrefsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefsService{store: store, logger: logger}
}

// Get returns a client's preferences, falling back to defaults.
func (s *PrefsService) Get(ctx context.Context, clientID string) (models.Preferences, error) {
	if clientID == "" {
		return models.DefaultPreferences(), nil
	}
	prefs, _, err := s.store.Get(ctx, clientID)
	if err != nil {
		return models.DefaultPreferences(), appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
	}
	return prefs, nil
}

// Update validates and persists a client's preferences.
func (s *PrefsService) Update(ctx context.Context, clientID string, prefs models.Preferences) (models.Preferences, error) {
	if clientID == "" {
		return models.Preferences{}, appErrors.Clone(appErrors.ErrValidation, "client id is required")
	}
	if !models.ValidLanguage(prefs.Language) {
		return models.Preferences{}, appErrors.Clone(appErrors.ErrValidation, "language must be sv or en")
	}
	if !models.ValidTheme(prefs.Theme) {
		return models.Preferences{}, appErrors.Clone(appErrors.ErrValidation, "theme must be light, dark or system")
	}
	if err := s.store.Set(ctx, clientID, prefs); err != nil {
		return models.Preferences{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preferences")
	}
	return prefs, nil
}
