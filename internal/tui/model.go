// Package tui implements the interactive course search terminal UI.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liu-tentor/exam-archive-api/internal/search"
)

// tickMsg drives the idle placeholder animation.
type tickMsg struct{}

// Model is the bubbletea model for the course search prompt. It wraps a
// search.Controller for suggestion state and a search.Typewriter for the
// idle placeholder cycle.
type Model struct {
	styles *Styles
	input  textinput.Model
	ctrl   *search.Controller
	tw     *search.Typewriter

	selection *search.Selection
	err       error
	quitting  bool
}

// NewModel builds the search model over the given course index.
func NewModel(index *search.Index, recents []string) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 30
	ti.Focus()

	ctrl := search.NewController(index, search.DefaultSubstringLimit)
	ctrl.SetRecents(recents)

	return &Model{
		styles: DefaultStyles(),
		input:  ti,
		ctrl:   ctrl,
		tw:     search.NewTypewriter(nil, time.Now().UnixNano()),
	}
}

// SetMode presets the submit destination.
func (m *Model) SetMode(mode search.Mode) {
	m.ctrl.SetMode(mode)
}

// Selection returns the submitted course selection, nil until Enter.
func (m *Model) Selection() *search.Selection {
	return m.selection
}

// Init starts the cursor blink and the placeholder animation.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(0))
}

func tick(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles key and tick messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// The typewriter only runs while the prompt is idle.
		if m.ctrl.State() == search.StateIdle {
			m.input.Placeholder = m.tw.Current()
			return m, tick(m.tw.Advance())
		}
		m.input.Placeholder = ""
		return m, tick(200 * time.Millisecond)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.ctrl.PanelOpen() {
				m.ctrl.Escape()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case tea.KeyUp:
			m.ctrl.MoveUp()
			return m, nil
		case tea.KeyDown:
			m.ctrl.MoveDown()
			return m, nil
		case tea.KeyTab:
			if m.ctrl.Mode() == search.ModeExams {
				m.ctrl.SetMode(search.ModeStats)
			} else {
				m.ctrl.SetMode(search.ModeExams)
			}
			return m, nil
		case tea.KeyEnter:
			selection, err := m.ctrl.Submit()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.selection = &selection
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetInput(m.input.Value())
		m.err = nil
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt, the suggestion panel and a status line.
func (m *Model) View() string {
	if m.quitting && m.selection != nil {
		return m.styles.ResultText.Render(m.selection.Code) + "  " + m.selection.Route + "\n"
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("LiU Tentor"))
	b.WriteString("\n")
	b.WriteString(m.styles.InputField.Render(m.input.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorText.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.ctrl.PanelOpen() || m.ctrl.Cursor() >= 0 {
		b.WriteString(m.renderPanel())
	}

	mode := "exams"
	if m.ctrl.Mode() == search.ModeStats {
		mode = "statistics"
	}
	b.WriteString(m.styles.StatusBar.Render(
		fmt.Sprintf("mode: %s   tab switch   ↑/↓ navigate   enter select   esc quit", mode)))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderPanel() string {
	var b strings.Builder
	cursor := m.ctrl.Cursor()
	i := 0
	write := func(code string, recent bool) {
		line := code
		if recent {
			line += " " + m.styles.RecentTag.Render("(recent)")
		}
		if i == cursor {
			b.WriteString(m.styles.ItemCursor.Render("» " + line))
		} else {
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
		i++
	}
	for _, code := range m.ctrl.Recents() {
		write(code, true)
	}
	for _, code := range m.ctrl.Matches() {
		write(code, false)
	}
	return b.String()
}
