package models

// ViewerSlot identifies one of the two side-by-side document panes.
type ViewerSlot string

const (
	SlotExam     ViewerSlot = "exam"
	SlotSolution ViewerSlot = "solution"
)

// Valid reports whether the slot is one of the known panes.
func (s ViewerSlot) Valid() bool {
	return s == SlotExam || s == SlotSolution
}

// DocumentViewState tracks rendering state for one document pane.
// PageRotations holds intrinsic per-page rotations reported by the renderer;
// the effective rotation of a page is the page rotation plus the global
// Rotation, mod 360.
type DocumentViewState struct {
	Scale         float64     `json:"scale"`
	Rotation      int         `json:"rotation"`
	NumPages      int         `json:"num_pages"`
	DocumentURL   string      `json:"document_url,omitempty"`
	PageRotations map[int]int `json:"page_rotations,omitempty"`
}

// DefaultDocumentViewState returns the initial pane state.
func DefaultDocumentViewState() DocumentViewState {
	return DocumentViewState{Scale: 1.2, Rotation: 0, NumPages: 0}
}

// HasDocument reports whether a document URL has been attached to the pane.
func (s DocumentViewState) HasDocument() bool {
	return s.DocumentURL != ""
}

// EffectiveRotation composes the intrinsic page rotation with the pane
// rotation for the given 1-based page number.
func (s DocumentViewState) EffectiveRotation(page int) int {
	r := s.Rotation
	if s.PageRotations != nil {
		r += s.PageRotations[page]
	}
	r %= 360
	if r < 0 {
		r += 360
	}
	return r
}

// Clone returns a detached copy, including the page-rotation map.
func (s DocumentViewState) Clone() DocumentViewState {
	out := s
	if s.PageRotations != nil {
		out.PageRotations = make(map[int]int, len(s.PageRotations))
		for page, rotation := range s.PageRotations {
			out.PageRotations[page] = rotation
		}
	}
	return out
}

// ViewerSession owns the independent exam and solution pane states.
type ViewerSession struct {
	ID    string                            `json:"id"`
	Slots map[ViewerSlot]*DocumentViewState `json:"slots"`
}

// Clone returns a detached copy of the session with cloned pane states.
func (s *ViewerSession) Clone() *ViewerSession {
	out := &ViewerSession{
		ID:    s.ID,
		Slots: make(map[ViewerSlot]*DocumentViewState, len(s.Slots)),
	}
	for slot, state := range s.Slots {
		copied := state.Clone()
		out.Slots[slot] = &copied
	}
	return out
}

// NewViewerSession initialises both panes with defaults.
func NewViewerSession(id string) *ViewerSession {
	exam := DefaultDocumentViewState()
	solution := DefaultDocumentViewState()
	return &ViewerSession{
		ID: id,
		Slots: map[ViewerSlot]*DocumentViewState{
			SlotExam:     &exam,
			SlotSolution: &solution,
		},
	}
}
