package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type prefsStoreStub struct {
	values map[string]models.Preferences
}

func (s *prefsStoreStub) Get(ctx context.Context, clientID string) (models.Preferences, bool, error) {
	if prefs, ok := s.values[clientID]; ok {
		return prefs, true, nil
	}
	return models.DefaultPreferences(), false, nil
}

func (s *prefsStoreStub) Set(ctx context.Context, clientID string, prefs models.Preferences) error {
	if s.values == nil {
		s.values = make(map[string]models.Preferences)
	}
	s.values[clientID] = prefs
	return nil
}

func TestPrefsDefaultsForNewClient(t *testing.T) {
	svc := NewPrefsService(&prefsStoreStub{}, nil)
	prefs, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageSwedish, prefs.Language)
	assert.Equal(t, models.ThemeSystem, prefs.Theme)
}

func TestPrefsUpdateRoundTrip(t *testing.T) {
	store := &prefsStoreStub{}
	svc := NewPrefsService(store, nil)

	updated, err := svc.Update(context.Background(), "client-1", models.Preferences{Language: "en", Theme: "dark"})
	require.NoError(t, err)
	assert.Equal(t, "en", updated.Language)

	prefs, err := svc.Get(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{Language: "en", Theme: "dark"}, prefs)
}

func TestPrefsUpdateValidation(t *testing.T) {
	svc := NewPrefsService(&prefsStoreStub{}, nil)

	_, err := svc.Update(context.Background(), "client-1", models.Preferences{Language: "de", Theme: "dark"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Update(context.Background(), "client-1", models.Preferences{Language: "sv", Theme: "sepia"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
