package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/liu-tentor/exam-archive-api/internal/models"
)

const prefsKeyPrefix = "preferences:"

// PrefsRepository persists per-client interface preferences in Redis.
type PrefsRepository struct {
	client *redis.Client
}

// NewPrefsRepository constructs the repository.
func NewPrefsRepository(client *redis.Client) *PrefsRepository {
	return &PrefsRepository{client: client}
}

// Get loads a client's preferences. A missing or corrupt key yields the
// defaults with ok=false so the caller can tell first-time clients apart.
func (r *PrefsRepository) Get(ctx context.Context, clientID string) (models.Preferences, bool, error) {
	raw, err := r.client.Get(ctx, prefsKeyPrefix+clientID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.DefaultPreferences(), false, nil
		}
		return models.DefaultPreferences(), false, fmt.Errorf("redis get preferences for %s: %w", clientID, err)
	}

	var prefs models.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return models.DefaultPreferences(), false, nil
	}
	return prefs, true, nil
}

// Set overwrites a client's preferences.
func (r *PrefsRepository) Set(ctx context.Context, clientID string, prefs models.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences for %s: %w", clientID, err)
	}
	if err := r.client.Set(ctx, prefsKeyPrefix+clientID, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set preferences for %s: %w", clientID, err)
	}
	return nil
}
