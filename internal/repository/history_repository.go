package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/liu-tentor/exam-archive-api/internal/models"
)

// historyKeyPrefix matches the v3 layout of the stored activity list.
// Bumping it orphans old keys, which expire through Redis maxmemory policy.
const historyKeyPrefix = "recent_activities_v3:"

// HistoryEnvelope wraps the persisted activity list with the schema
// version it was written under. Readers wipe the list when the version
// no longer matches the configured one.
type HistoryEnvelope struct {
	Version    string                  `json:"version"`
	Activities []models.RecentActivity `json:"activities"`
}

// HistoryRepository persists per-client recent-activity lists in Redis.
type HistoryRepository struct {
	client *redis.Client
}

// NewHistoryRepository constructs the repository.
func NewHistoryRepository(client *redis.Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Get loads the stored envelope for a client. A missing key returns an
// empty envelope with no error.
func (r *HistoryRepository) Get(ctx context.Context, clientID string) (*HistoryEnvelope, error) {
	raw, err := r.client.Get(ctx, historyKeyPrefix+clientID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &HistoryEnvelope{}, nil
		}
		return nil, fmt.Errorf("redis get history for %s: %w", clientID, err)
	}

	var env HistoryEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Corrupt payloads are treated like a version mismatch.
		return &HistoryEnvelope{}, nil
	}
	return &env, nil
}

// Set overwrites the stored envelope for a client.
func (r *HistoryRepository) Set(ctx context.Context, clientID string, env *HistoryEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal history for %s: %w", clientID, err)
	}
	if err := r.client.Set(ctx, historyKeyPrefix+clientID, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set history for %s: %w", clientID, err)
	}
	return nil
}

// Delete removes a client's stored activity list.
func (r *HistoryRepository) Delete(ctx context.Context, clientID string) error {
	if err := r.client.Del(ctx, historyKeyPrefix+clientID).Err(); err != nil {
		return fmt.Errorf("redis delete history for %s: %w", clientID, err)
	}
	return nil
}
