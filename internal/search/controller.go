package search

import (
	"fmt"
	"strings"
)

// Mode selects the destination of a submitted search.
type Mode string

const (
	ModeExams Mode = "tentor"
	ModeStats Mode = "stats"
)

// RouteFor resolves the navigation target for a selected course code.
func RouteFor(code string, mode Mode) string {
	if mode == ModeStats {
		return fmt.Sprintf("/search/%s/stats", code)
	}
	return fmt.Sprintf("/search/%s", code)
}

// State describes what the search widget is currently doing.
type State int

const (
	// StateIdle means the input is empty and no suggestions are shown.
	StateIdle State = iota
	// StateBrowsing means substring matches are displayed for the input.
	StateBrowsing
	// StateNavigating means the keyboard cursor is active over the
	// combined recent+match list.
	StateNavigating
)

// Selection is the result of a successful submit.
type Selection struct {
	Code  string
	Route string
}

// ErrEmptySelection is returned when submit is attempted with no input.
var ErrEmptySelection = fmt.Errorf("empty course code")

// Controller drives one search widget: input text, the ranked suggestion
// list, and the keyboard selection cursor. Recent activity entries are shown
// first in the combined list, followed by index matches.
type Controller struct {
	index *Index
	limit int
	mode  Mode

	input   string
	recents []string
	matches []string
	cursor  int
	open    bool
}

// NewController builds a controller over the given index.
func NewController(index *Index, limit int) *Controller {
	if limit <= 0 {
		limit = DefaultSubstringLimit
	}
	return &Controller{
		index:  index,
		limit:  limit,
		mode:   ModeExams,
		cursor: -1,
	}
}

// SetMode switches between the exam listing and statistics destinations.
func (c *Controller) SetMode(mode Mode) {
	if mode == ModeExams || mode == ModeStats {
		c.mode = mode
	}
}

// Mode returns the active search mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetRecents replaces the recent-activity entries shown above the matches.
func (c *Controller) SetRecents(codes []string) {
	c.recents = append(c.recents[:0], codes...)
}

// Recents returns the recent-activity entries.
func (c *Controller) Recents() []string {
	return c.recents
}

// SetInput replaces the typed text and recomputes substring matches.
// Any active cursor is reset.
func (c *Controller) SetInput(text string) {
	c.input = text
	c.cursor = -1
	q := strings.ToUpper(strings.TrimSpace(text))
	if q == "" {
		c.matches = nil
		c.open = false
		return
	}
	c.matches = c.index.FilterBySubstring(q, c.limit)
	c.open = true
}

// Input returns the raw typed text.
func (c *Controller) Input() string {
	return c.input
}

// Matches returns the current substring matches.
func (c *Controller) Matches() []string {
	return c.matches
}

// Cursor returns the combined-list cursor position, -1 when inactive.
func (c *Controller) Cursor() int {
	return c.cursor
}

// PanelOpen reports whether the suggestion panel is showing.
func (c *Controller) PanelOpen() bool {
	return c.open && c.visibleCount() > 0
}

// State reports the widget state.
func (c *Controller) State() State {
	if strings.TrimSpace(c.input) == "" {
		return StateIdle
	}
	if c.cursor >= 0 {
		return StateNavigating
	}
	return StateBrowsing
}

func (c *Controller) visibleCount() int {
	return len(c.recents) + len(c.matches)
}

// MoveDown advances the cursor, clamped to the last visible item.
func (c *Controller) MoveDown() {
	max := c.visibleCount() - 1
	if max < 0 {
		return
	}
	next := c.cursor + 1
	if next > max {
		next = max
	}
	c.cursor = next
}

// MoveUp retreats the cursor, clamped to the first item.
func (c *Controller) MoveUp() {
	if c.visibleCount() == 0 {
		return
	}
	next := c.cursor - 1
	if next < 0 {
		next = 0
	}
	c.cursor = next
}

// Escape closes the suggestion panel and clears the cursor without
// clearing the typed text.
func (c *Controller) Escape() {
	c.open = false
	c.cursor = -1
}

// itemAt resolves the combined-list item under the cursor: recents first,
// then matches.
func (c *Controller) itemAt(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	if i < len(c.recents) {
		return c.recents[i], true
	}
	i -= len(c.recents)
	if i < len(c.matches) {
		return c.matches[i], true
	}
	return "", false
}

// Submit resolves Enter: the cursor item when one is selected, the raw
// typed text otherwise. The chosen code is upper-cased; empty input is
// rejected. The suggestion panel closes and the input resets on success.
func (c *Controller) Submit() (Selection, error) {
	choice := c.input
	if item, ok := c.itemAt(c.cursor); ok {
		choice = item
	}
	code := strings.ToUpper(strings.TrimSpace(choice))
	if code == "" {
		return Selection{}, ErrEmptySelection
	}
	c.input = ""
	c.matches = nil
	c.cursor = -1
	c.open = false
	return Selection{Code: code, Route: RouteFor(code, c.mode)}, nil
}
