// internal/ui/app.go
package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/pane"
	"github.com/nhath/myshortcuts/internal/scheme"
	"github.com/nhath/myshortcuts/internal/store"
)

// focus names the pane receiving navigation input
type focus int

const (
	focusNone focus = iota // popup open
	focusShortcuts
	focusConfigs
)

// focused derives the focused pane from the two pane states
func (m *Model) focused() focus {
	switch {
	case pane.IsFocused(m.shortcuts.State()):
		return focusShortcuts
	case pane.IsFocused(m.configs.State()):
		return focusConfigs
	default:
		return focusNone
	}
}

// setFocus gives s to pane f and blurs the other one, so at most one pane
// is ever focused
func (m *Model) setFocus(f focus, s pane.State) {
	switch f {
	case focusShortcuts:
		m.shortcuts.SetState(s)
		m.configs.SetState(pane.Blur(m.configs.State()))
	case focusConfigs:
		m.configs.SetState(s)
		m.shortcuts.SetState(pane.Blur(m.shortcuts.State()))
	default:
		m.shortcuts.SetState(pane.Blur(m.shortcuts.State()))
		m.configs.SetState(pane.Blur(m.configs.State()))
	}
}

// stateOf returns the state of pane f
func (m *Model) stateOf(f focus) pane.State {
	if f == focusConfigs {
		return m.configs.State()
	}
	return m.shortcuts.State()
}

// other returns the pane that is not f
func other(f focus) focus {
	if f == focusShortcuts {
		return focusConfigs
	}
	return focusShortcuts
}

// current returns the shortcut highlighted in the shortcut pane
func (m *Model) current() store.Shortcut {
	return m.shortcuts.At(m.shortcuts.Row())
}

// editing reports whether a cell of either pane is being edited
func (m *Model) editing() bool {
	_, a := m.shortcuts.State().(pane.Editing)
	_, b := m.configs.State().(pane.Editing)
	return a || b
}

// Update handles one message, then re-syncs both panes from the store
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.debug {
			log.Printf("ui: key %q shortcuts=%#v configs=%#v", msg.String(), m.shortcuts.State(), m.configs.State())
		}
		m, cmd = m.handleKey(msg)

	case LaunchedMsg:
		if msg.Err != nil {
			log.Printf("ui: launch failed: %v", msg.Err)
		} else {
			log.Printf("ui: launched %q", msg.Command)
		}

	case ProbeResultMsg:
		if msg.Name == m.probeFor {
			m.setProbeResult(msg)
		}
	}

	m.sync()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.popup.visible {
		return m.handlePopupKey(msg)
	}

	f := m.focused()
	switch s := m.stateOf(f).(type) {
	case pane.Editing:
		return m.handleEditKey(msg, f, s)
	case pane.Selected:
		return m.handleSelectedKey(msg, f, s)
	case pane.WasSelected:
		// Both panes blurred without a popup; recover focus on the shortcuts
		m.setFocus(focusShortcuts, pane.Selected{Row: s.Row})
	}
	return m, nil
}

func (m Model) handleSelectedKey(msg tea.KeyMsg, f focus, s pane.Selected) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.setFocus(f, pane.Selected{Row: s.Row - 1, Column: s.Column})

	case key.Matches(msg, m.keys.Down):
		m.setFocus(f, pane.Selected{Row: s.Row + 1, Column: s.Column})

	case key.Matches(msg, m.keys.Left):
		if s.Column > 0 {
			m.setFocus(f, pane.Selected{Row: s.Row, Column: s.Column - 1})
		}

	case key.Matches(msg, m.keys.Right):
		if s.Column < pane.LastColumn {
			m.setFocus(f, pane.Selected{Row: s.Row, Column: s.Column + 1})
			break
		}
		o := other(f)
		m.setFocus(o, pane.Selected{Row: pane.RowOf(m.stateOf(o)), Column: 0})

	case key.Matches(msg, m.keys.Edit):
		m.startEdit(f, s)

	case key.Matches(msg, m.keys.Remove):
		m.remove(f, s)

	case key.Matches(msg, m.keys.Open):
		return m, m.open()

	case key.Matches(msg, m.keys.Add):
		m.setFocus(focusNone, nil)
		m.popup = popupState{visible: true, highlighted: 0}

	case key.Matches(msg, m.keys.Hide):
		m.masked = !m.masked

	case key.Matches(msg, m.keys.Probe):
		return m, m.probe()
	}
	return m, nil
}

// remove deletes the highlighted shortcut, or blanks the selected field
func (m *Model) remove(f focus, s pane.Selected) {
	ctx := context.Background()

	if f == focusConfigs {
		values := scheme.Values(m.configs.Values())
		values[m.configs.Row()] = ""
		if err := m.store.SaveFields(ctx, m.current(), values); err != nil {
			log.Printf("ui: clearing field failed: %v", err)
		}
		return
	}

	name := m.shortcuts.At(s.Row).Name
	if err := m.store.Delete(ctx, name); err != nil {
		log.Printf("ui: deleting %q failed: %v", name, err)
	}
	if seeded, err := m.store.EnsureNotEmpty(ctx); err != nil {
		log.Printf("ui: seeding after delete failed: %v", err)
	} else if seeded {
		log.Printf("ui: last shortcut deleted, seeded a default one")
	}
	row := s.Row - 1
	if row < 0 {
		row = 0
	}
	m.setFocus(focusShortcuts, pane.Selected{Row: row, Column: s.Column})
}

// sync re-reads the shortcut list and the fields of the highlighted shortcut.
// It is skipped while a cell is edited so the buffer is not lost.
func (m *Model) sync() {
	if m.store == nil || m.editing() {
		return
	}
	ctx := context.Background()

	list, err := m.store.List(ctx)
	if err != nil {
		log.Printf("ui: sync: %v", err)
	} else {
		m.shortcuts.SetValues(list)
	}

	if m.follow != "" {
		for i, sc := range m.shortcuts.Values() {
			if sc.Name == m.follow {
				s := m.shortcuts.State()
				if sel, ok := s.(pane.Selected); ok {
					m.shortcuts.SetState(pane.Selected{Row: i, Column: sel.Column})
				} else {
					m.shortcuts.SetState(pane.WasSelected{Row: i})
				}
				break
			}
		}
		m.follow = ""
	}

	sc := m.current()
	fields, err := m.store.Fields(ctx, sc)
	if err != nil {
		log.Printf("ui: sync fields of %q: %v", sc.Name, err)
	} else {
		m.configs.SetValues(fields)
	}

	if m.probeFor != "" && m.probeFor != sc.Name {
		m.probeFor, m.probeStatus, m.probeErr = "", "", false
	}
	if m.debug {
		log.Printf("ui: sync %d shortcuts, %q has %d fields", m.shortcuts.Len(), sc.Name, m.configs.Len())
	}
}
