// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/config"
	"github.com/nhath/myshortcuts/internal/pane"
	"github.com/nhath/myshortcuts/internal/probe"
	"github.com/nhath/myshortcuts/internal/scheme"
	"github.com/nhath/myshortcuts/internal/store"
)

// Store is the persistence the controller reads and writes every frame
type Store interface {
	List(ctx context.Context) ([]store.Shortcut, error)
	Fields(ctx context.Context, sc store.Shortcut) ([]scheme.Field, error)
	Create(ctx context.Context, sc store.Shortcut, values []string) error
	Rename(ctx context.Context, oldName, newName string) error
	SaveFields(ctx context.Context, sc store.Shortcut, values []string) error
	Delete(ctx context.Context, name string) error
	EnsureNotEmpty(ctx context.Context) (bool, error)
}

// Launcher runs a command outside the TUI without blocking it
type Launcher interface {
	Launch(command string) error
}

// Prober checks that the target of a shortcut is reachable
type Prober func(ctx context.Context, kind string, fields []string) error

// popupState is the kind picker shown while creating a shortcut
type popupState struct {
	visible     bool
	highlighted int
}

// Model is the root Bubble Tea model
type Model struct {
	config   *config.Config
	store    Store
	launcher Launcher
	prober   Prober
	keys     KeyMap
	help     help.Model
	debug    bool

	width, height int

	// Panes
	shortcuts pane.Model[store.Shortcut]
	configs   pane.Model[scheme.Field]
	popup     popupState
	kinds     []string

	// Name of the shortcut being renamed, set while its name is edited
	pendingRename string
	renaming      bool
	// Name to reselect after the next sync, since renames can reorder the list
	follow string

	masked bool

	// Probe result for the shortcut named probeFor
	probeFor    string
	probeStatus string
	probeErr    bool
}

// Column headers of the two panes
var (
	shortcutHeader = [2]string{" Kind ", " Name "}
	configHeader   = [2]string{" Property ", " Value "}
)

// NewModel creates the controller and performs the first sync
func NewModel(cfg *config.Config, st Store, l Launcher) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	InitStyles(cfg.Theme)

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		config:   cfg,
		store:    st,
		launcher: l,
		prober:   probe.Check,
		keys:     NewKeyMap(cfg.Keys),
		help:     h,
		shortcuts: pane.New(" Shortcuts ", shortcutHeader,
			store.DefaultShortcut(), pane.Selected{Row: 0, Column: 0}),
		configs: pane.New(" Configurations ", configHeader,
			scheme.Field{Label: scheme.LabelUnknown}, pane.WasSelected{Row: 0}),
		kinds:  scheme.CreationKinds(),
		masked: cfg.MaskValues,
	}
	m.sync()
	return m
}

// WithProber replaces the reachability check
func (m Model) WithProber(p Prober) Model {
	m.prober = p
	return m
}

// WithDebug enables tracing of keys and syncs to the log
func (m Model) WithDebug(debug bool) Model {
	m.debug = debug
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}
