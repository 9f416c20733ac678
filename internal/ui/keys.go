// internal/ui/keys.go
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nhath/myshortcuts/internal/config"
)

// KeyMap holds the bindings built from the config key lists
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Remove key.Binding
	Open   key.Binding
	Hide   key.Binding
	Probe  key.Binding
	Save   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// NewKeyMap builds the bindings for keys
func NewKeyMap(keys config.KeyMap) KeyMap {
	return KeyMap{
		Up:     binding(keys.Up, "up"),
		Down:   binding(keys.Down, "down"),
		Left:   binding(keys.Left, "left"),
		Right:  binding(keys.Right, "right"),
		Add:    binding(keys.Add, "add"),
		Edit:   binding(keys.Edit, "edit"),
		Remove: binding(keys.Remove, "remove"),
		Open:   binding(keys.Open, "open"),
		Hide:   binding(keys.Hide, "hide"),
		Probe:  binding(keys.Probe, "test"),
		Save:   binding(keys.Save, "confirm"),
		Cancel: binding(keys.Cancel, "cancel"),
		Quit:   binding(keys.Quit, "quit"),
	}
}

// browseKeys implements help.KeyMap for normal navigation
type browseKeys struct{ KeyMap }

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Add, k.Edit, k.Remove, k.Open, k.Hide, k.Probe, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Edit, k.Remove, k.Open},
		{k.Hide, k.Probe, k.Quit},
	}
}

// editKeys implements help.KeyMap while a cell is edited
type editKeys struct{ KeyMap }

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "move cursor")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
		k.Save, k.Cancel,
	}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// popupKeys implements help.KeyMap while the kind picker is open
type popupKeys struct{ KeyMap }

func (k popupKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Save, k.Cancel}
}

func (k popupKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
