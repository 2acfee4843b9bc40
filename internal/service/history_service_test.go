package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	"github.com/liu-tentor/exam-archive-api/internal/repository"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

type historyStoreStub struct {
	envelopes map[string]*repository.HistoryEnvelope
	err       error
}

func newHistoryStoreStub() *historyStoreStub {
	return &historyStoreStub{envelopes: make(map[string]*repository.HistoryEnvelope)}
}

func (s *historyStoreStub) Get(ctx context.Context, clientID string) (*repository.HistoryEnvelope, error) {
	if s.err != nil {
		return nil, s.err
	}
	if env, ok := s.envelopes[clientID]; ok {
		copied := *env
		return &copied, nil
	}
	return &repository.HistoryEnvelope{}, nil
}

func (s *historyStoreStub) Set(ctx context.Context, clientID string, env *repository.HistoryEnvelope) error {
	if s.err != nil {
		return s.err
	}
	copied := *env
	s.envelopes[clientID] = &copied
	return nil
}

func (s *historyStoreStub) Delete(ctx context.Context, clientID string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.envelopes, clientID)
	return nil
}

func newHistoryServiceForTest(store *historyStoreStub) *HistoryService {
	svc := NewHistoryService(store, "1.2", nil)
	clock := time.Unix(1700000000, 0)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestHistoryAddMovesExistingToFront(t *testing.T) {
	store := newHistoryStoreStub()
	svc := newHistoryServiceForTest(store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "client-1", "TDDD97"))
	require.NoError(t, svc.Add(ctx, "client-1", "TATA24"))
	require.NoError(t, svc.Add(ctx, "client-1", "TDDD97"))

	activities, err := svc.List(ctx, "client-1", 0)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "TDDD97", activities[0].CourseCode)
	assert.Equal(t, "TATA24", activities[1].CourseCode)
	assert.Greater(t, activities[0].Timestamp, activities[1].Timestamp)
}

func TestHistoryRoundTripSameVersion(t *testing.T) {
	store := newHistoryStoreStub()
	svc := newHistoryServiceForTest(store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "client-1", "tddd97"))

	activities, err := svc.List(ctx, "client-1", 0)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "TDDD97", activities[0].CourseCode)
	assert.Equal(t, "1.2", store.envelopes["client-1"].Version)
}

func TestHistoryVersionMismatchWipes(t *testing.T) {
	store := newHistoryStoreStub()
	store.envelopes["client-1"] = &repository.HistoryEnvelope{
		Version:    "1.1",
		Activities: []models.RecentActivity{{CourseCode: "TDDD97", Timestamp: 1}},
	}
	svc := newHistoryServiceForTest(store)

	activities, err := svc.List(context.Background(), "client-1", 0)
	require.NoError(t, err)
	assert.Empty(t, activities)
	assert.NotContains(t, store.envelopes, "client-1")
}

func TestHistoryListLimitTruncates(t *testing.T) {
	store := newHistoryStoreStub()
	svc := newHistoryServiceForTest(store)
	ctx := context.Background()

	for _, code := range []string{"TDDD97", "TATA24", "TSRT12", "TDDE01"} {
		require.NoError(t, svc.Add(ctx, "client-1", code))
	}

	activities, err := svc.List(ctx, "client-1", 2)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "TDDE01", activities[0].CourseCode)
	assert.Equal(t, "TSRT12", activities[1].CourseCode)
}

func TestHistoryClear(t *testing.T) {
	store := newHistoryStoreStub()
	svc := newHistoryServiceForTest(store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "client-1", "TDDD97"))
	require.NoError(t, svc.Clear(ctx, "client-1"))

	activities, err := svc.List(ctx, "client-1", 0)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestHistoryValidation(t *testing.T) {
	svc := newHistoryServiceForTest(newHistoryStoreStub())
	ctx := context.Background()

	err := svc.Add(ctx, "client-1", "  ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.Add(ctx, "", "TDDD97")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
