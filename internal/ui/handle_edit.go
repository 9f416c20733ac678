// internal/ui/handle_edit.go
package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/pane"
	"github.com/nhath/myshortcuts/internal/scheme"
)

// startEdit seeds an edit buffer with the name or value of the selected row
func (m *Model) startEdit(f focus, s pane.Selected) {
	var value string
	if f == focusShortcuts {
		value = m.shortcuts.At(s.Row).Name
		m.pendingRename = value
		m.renaming = true
	} else {
		value = m.configs.At(s.Row).Value
	}
	m.setFocus(f, pane.Editing{Row: s.Row, Column: s.Column, Input: pane.NewInput(value)})
}

func (m Model) handleEditKey(msg tea.KeyMsg, f focus, s pane.Editing) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.commit(f, s)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.cancelEdit(f, s)
		return m, nil
	}

	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd,
		tea.KeyBackspace, tea.KeyDelete, tea.KeySpace, tea.KeyRunes:
		s.Input = s.Input.Update(msg)
	default:
		return m, nil
	}
	m.setFocus(f, s)
	return m, nil
}

// commit writes the buffer back keyed by the name the row had before the edit
func (m *Model) commit(f focus, s pane.Editing) {
	ctx := context.Background()
	value := s.Input.Value()

	if f == focusShortcuts {
		oldName := m.pendingRename
		switch {
		case !m.renaming:
			log.Printf("ui: commit without a pending rename")
		case value == "":
			log.Printf("ui: refusing empty name for %q", oldName)
		case value == oldName:
		default:
			if err := scheme.CheckName(value); err != nil {
				log.Printf("ui: refusing rename of %q: %v", oldName, err)
				break
			}
			if err := m.store.Rename(ctx, oldName, value); err != nil {
				log.Printf("ui: renaming %q to %q failed: %v", oldName, value, err)
			} else {
				m.follow = value
			}
		}
	} else if err := scheme.CheckValue(m.current().Kind, value); err != nil {
		log.Printf("ui: refusing value for %q: %v", m.current().Name, err)
	} else {
		values := scheme.Values(m.configs.Values())
		values[m.configs.Row()] = value
		if err := m.store.SaveFields(ctx, m.current(), values); err != nil {
			log.Printf("ui: saving fields of %q failed: %v", m.current().Name, err)
		}
	}

	m.pendingRename, m.renaming = "", false
	m.setFocus(f, pane.Selected{Row: s.Row, Column: s.Column})
}

// cancelEdit drops the buffer without writing
func (m *Model) cancelEdit(f focus, s pane.Editing) {
	m.pendingRename, m.renaming = "", false
	m.setFocus(f, pane.Selected{Row: s.Row, Column: s.Column})
}
