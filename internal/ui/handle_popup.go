// internal/ui/handle_popup.go
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

func (m Model) handlePopupKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.kinds)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.popup.highlighted = (m.popup.highlighted - 1 + n) % n

	case key.Matches(msg, m.keys.Down):
		m.popup.highlighted = (m.popup.highlighted + 1) % n

	case key.Matches(msg, m.keys.Save):
		m.create(m.kinds[m.popup.highlighted])
		m.closePopup()

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.closePopup()

	case key.Matches(msg, m.keys.Hide):
		m.masked = !m.masked
	}
	return m, nil
}

// create inserts a placeholder shortcut of kind under the next free Default<N> name
func (m *Model) create(kind string) {
	var names []string
	for _, sc := range m.shortcuts.Values() {
		names = append(names, sc.Name)
	}
	sc := store.Shortcut{Name: scheme.NextName(names), Kind: kind}

	if err := m.store.Create(context.Background(), sc, scheme.Placeholders(kind)); err != nil {
		log.Printf("ui: creating %s shortcut failed: %v", kind, err)
		return
	}
	log.Printf("ui: created %q (%s)", sc.Name, kind)
}

// closePopup hides the picker and gives focus back to the shortcut pane
func (m *Model) closePopup() {
	m.popup = popupState{}
	m.setFocus(focusShortcuts, pane.Selected{Row: m.shortcuts.Row(), Column: 0})
}
