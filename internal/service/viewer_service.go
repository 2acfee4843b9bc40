package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

// SlotUpdate carries a partial mutation of one viewer pane. Nil fields
// are left untouched.
type SlotUpdate struct {
	DocumentURL  *string  `json:"document_url"`
	Scale        *float64 `json:"scale"`
	Rotation     *int     `json:"rotation"`
	NumPages     *int     `json:"num_pages"`
	PageNumber   *int     `json:"page_number"`
	PageRotation *int     `json:"page_rotation"`
}

// ViewerService keeps per-session document viewer state in memory with a
// TTL. The exam and solution panes of a session are fully independent;
// mutating one never touches the other.
type ViewerService struct {
	sessions *gocache.Cache

	mu sync.Mutex
}

// NewViewerService constructs the service.
func NewViewerService(ttl time.Duration) *ViewerService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &ViewerService{sessions: gocache.New(ttl, ttl/2)}
}

// CreateSession opens a new viewer session with both panes at defaults.
func (s *ViewerService) CreateSession() *models.ViewerSession {
	session := models.NewViewerSession(uuid.NewString())
	s.mu.Lock()
	s.sessions.SetDefault(session.ID, session)
	s.mu.Unlock()
	return session.Clone()
}

// GetSession returns a detached copy of an active session. The stored
// session is only read or written under the mutex, so the copy can be
// marshalled while a concurrent UpdateSlot mutates the original.
func (s *ViewerService) GetSession(id string) (*models.ViewerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// lookup resolves the live session. Callers must hold s.mu.
func (s *ViewerService) lookup(id string) (*models.ViewerSession, error) {
	cached, ok := s.sessions.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "viewer session not found")
	}
	return cached.(*models.ViewerSession), nil
}

// UpdateSlot applies a partial update to one pane of a session.
// Attaching a document URL resets the pane to defaults first, matching
// the behaviour when a new document is opened in the viewer.
func (s *ViewerService) UpdateSlot(sessionID string, slot models.ViewerSlot, update SlotUpdate) (*models.DocumentViewState, error) {
	if !slot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown viewer slot %q", slot))
	}
	if err := validateSlotUpdate(update); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	state := session.Slots[slot]

	if update.DocumentURL != nil {
		fresh := models.DefaultDocumentViewState()
		fresh.DocumentURL = *update.DocumentURL
		*state = fresh
	}
	if update.Scale != nil {
		state.Scale = *update.Scale
	}
	if update.Rotation != nil {
		state.Rotation = normaliseRotation(state.Rotation + *update.Rotation)
	}
	if update.NumPages != nil {
		state.NumPages = *update.NumPages
	}
	if update.PageNumber != nil {
		if state.PageRotations == nil {
			state.PageRotations = make(map[int]int)
		}
		state.PageRotations[*update.PageNumber] = normaliseRotation(*update.PageRotation)
	}

	// Refresh the TTL on activity.
	s.sessions.SetDefault(session.ID, session)

	copied := state.Clone()
	return &copied, nil
}

func validateSlotUpdate(update SlotUpdate) error {
	if update.Scale != nil && *update.Scale <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "scale must be positive")
	}
	if update.Rotation != nil && *update.Rotation%90 != 0 {
		return appErrors.Clone(appErrors.ErrValidation, "rotation must be a multiple of 90")
	}
	if update.NumPages != nil && *update.NumPages < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "num_pages must not be negative")
	}
	if update.PageNumber != nil {
		if *update.PageNumber < 1 {
			return appErrors.Clone(appErrors.ErrValidation, "page_number must be at least 1")
		}
		if update.PageRotation == nil {
			return appErrors.Clone(appErrors.ErrValidation, "page_rotation is required with page_number")
		}
		if *update.PageRotation%90 != 0 {
			return appErrors.Clone(appErrors.ErrValidation, "page_rotation must be a multiple of 90")
		}
	}
	return nil
}

func normaliseRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
