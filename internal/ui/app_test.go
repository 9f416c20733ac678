package ui

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/config"
	"github.com/nhath/myshortcuts/internal/pane"
	"github.com/nhath/myshortcuts/internal/scheme"
	"github.com/nhath/myshortcuts/internal/store"
)

type row struct {
	sc     store.Shortcut
	config string
}

// fakeStore keeps rows in memory and records every write
type fakeStore struct {
	rows    []row
	writes  []string
	failAll bool
}

func newFakeStore(rows ...row) *fakeStore {
	return &fakeStore{rows: rows}
}

func (f *fakeStore) List(context.Context) ([]store.Shortcut, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	out := make([]store.Shortcut, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r.sc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeStore) find(name string) int {
	for i, r := range f.rows {
		if r.sc.Name == name {
			return i
		}
	}
	return -1
}

func (f *fakeStore) Fields(_ context.Context, sc store.Shortcut) ([]scheme.Field, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	raw := ""
	if i := f.find(sc.Name); i >= 0 {
		raw = f.rows[i].config
	}
	return scheme.Project(sc.Kind, raw), nil
}

func (f *fakeStore) Create(_ context.Context, sc store.Shortcut, values []string) error {
	f.writes = append(f.writes, "create "+sc.Name)
	f.rows = append(f.rows, row{sc: sc, config: scheme.Join(values)})
	return nil
}

func (f *fakeStore) Rename(_ context.Context, oldName, newName string) error {
	f.writes = append(f.writes, "rename "+oldName+" "+newName)
	if i := f.find(oldName); i >= 0 {
		f.rows[i].sc.Name = newName
	}
	return nil
}

func (f *fakeStore) SaveFields(_ context.Context, sc store.Shortcut, values []string) error {
	f.writes = append(f.writes, "save "+sc.Name)
	if i := f.find(sc.Name); i >= 0 {
		f.rows[i].config = scheme.Join(values)
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	f.writes = append(f.writes, "delete "+name)
	if i := f.find(name); i >= 0 {
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
	}
	return nil
}

func (f *fakeStore) EnsureNotEmpty(ctx context.Context) (bool, error) {
	if len(f.rows) > 0 {
		return false, nil
	}
	return true, f.Create(ctx, store.Shortcut{Name: "Default0", Kind: scheme.Custom}, scheme.Placeholders(scheme.Custom))
}

type fakeLauncher struct{ launched []string }

func (f *fakeLauncher) Launch(command string) error {
	f.launched = append(f.launched, command)
	return nil
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(st *fakeStore, l *fakeLauncher) Model {
	return NewModel(config.DefaultConfig(), st, l)
}

// press feeds msgs to m and returns the model and the last command
func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func threeShortcuts() *fakeStore {
	return newFakeStore(
		row{store.Shortcut{Name: "c1", Kind: scheme.Custom}, "echo one"},
		row{store.Shortcut{Name: "m1", Kind: scheme.MySQL}, "h;3306;root;pw;app;;"},
		row{store.Shortcut{Name: "p1", Kind: scheme.PostgreSQL}, "db.local;5432;alice;secret;mydb;"},
	)
}

func TestRowsWrapBothWays(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	n := m.shortcuts.Len()

	down := make([]tea.Msg, n)
	for i := range down {
		down[i] = keyDown
	}
	m, _ = press(t, m, down...)
	if m.shortcuts.Row() != 0 {
		t.Errorf("after %d downs row = %d", n, m.shortcuts.Row())
	}

	m, _ = press(t, m, keyUp)
	if m.shortcuts.Row() != n-1 {
		t.Errorf("up from 0 = %d, want %d", m.shortcuts.Row(), n-1)
	}
}

func TestConfigPaneFollowsHighlightedShortcut(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	if got := m.configs.At(0).Value; got != "echo one" {
		t.Errorf("first shortcut config = %q", got)
	}

	m, _ = press(t, m, keyDown)
	if m.current().Name != "m1" || m.configs.Len() != scheme.Len(scheme.MySQL) {
		t.Errorf("configs not synced to %q: %d fields", m.current().Name, m.configs.Len())
	}
}

func TestColumnsAndFocusHandOff(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	m, _ = press(t, m, keyDown, keyDown)

	m, _ = press(t, m, keyLeft, keyLeft)
	if s := m.shortcuts.State(); s != (pane.Selected{Row: 2, Column: 0}) {
		t.Errorf("left at column 0 moved state to %#v", s)
	}

	m, _ = press(t, m, keyRight)
	if s := m.shortcuts.State(); s != (pane.Selected{Row: 2, Column: 1}) {
		t.Errorf("right = %#v", s)
	}

	m, _ = press(t, m, keyRight)
	if s := m.shortcuts.State(); s != (pane.WasSelected{Row: 2}) {
		t.Errorf("shortcuts after hand-off = %#v", s)
	}
	if s := m.configs.State(); s != (pane.Selected{Row: 0, Column: 0}) {
		t.Errorf("configs after hand-off = %#v", s)
	}

	// Right cycles through all four cells and back to the shortcut pane
	m, _ = press(t, m, keyDown, keyRight, keyRight)
	if s := m.configs.State(); s != (pane.WasSelected{Row: 1}) {
		t.Errorf("configs after second hand-off = %#v", s)
	}
	if s := m.shortcuts.State(); s != (pane.Selected{Row: 2, Column: 0}) {
		t.Errorf("shortcuts regained focus as %#v", s)
	}
}

func TestEditCommitRenamesOnce(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	m, _ = press(t, m, runes("e"))
	if _, ok := m.shortcuts.State().(pane.Editing); !ok {
		t.Fatalf("expected editing, got %#v", m.shortcuts.State())
	}
	m, _ = press(t, m, keyBack, runes("2"), keyEnter)

	if len(st.writes) != 1 || st.writes[0] != "rename c1 c2" {
		t.Errorf("writes = %v", st.writes)
	}
	if got := m.current().Name; got != "c2" {
		t.Errorf("shortcut pane shows %q", got)
	}
	if s := m.shortcuts.State(); s != (pane.Selected{Row: 0, Column: 0}) {
		t.Errorf("state after commit = %#v", s)
	}
}

func TestEditingConsumesCommandKeys(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	m, cmd := press(t, m, runes("e"), runes("q"), runes("r"), runes("o"))
	if cmd != nil {
		t.Errorf("keys typed while editing produced a command")
	}
	s, ok := m.shortcuts.State().(pane.Editing)
	if !ok || s.Input.Value() != "c1qro" {
		t.Errorf("state = %#v", m.shortcuts.State())
	}

	m, _ = press(t, m, keyEsc)
	if len(st.writes) != 0 {
		t.Errorf("cancel wrote %v", st.writes)
	}
	if _, ok := m.shortcuts.State().(pane.Selected); !ok {
		t.Errorf("state after cancel = %#v", m.shortcuts.State())
	}
}

func TestEditFieldSavesWholeConfiguration(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	// p1 is last; move to it, hand off to its Host field and edit it
	m, _ = press(t, m, keyUp, keyRight, keyRight, runes("e"))
	for range "db.local" {
		m, _ = press(t, m, keyBack)
	}
	m, _ = press(t, m, runes("x"), keyEnter)

	// Backspace keeps the last rune: "d" + "x"
	if got := st.rows[2].config; got != "dx;5432;alice;secret;mydb;" {
		t.Errorf("stored config = %q", got)
	}
	if len(st.writes) != 1 || st.writes[0] != "save p1" {
		t.Errorf("writes = %v", st.writes)
	}
}

func TestCommitRefusesSeparator(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	// rename c1 to c1;x
	m, _ = press(t, m, runes("e"), runes(";x"), keyEnter)
	if len(st.writes) != 0 {
		t.Errorf("rename with separator wrote %v", st.writes)
	}
	if got := m.current().Name; got != "c1" {
		t.Errorf("shortcut pane shows %q", got)
	}

	// Password of p1 to se;cret
	m, _ = press(t, m, keyUp, keyRight, keyRight, keyDown, keyDown, keyDown, runes("e"), runes(";x"), keyEnter)
	if len(st.writes) != 0 {
		t.Errorf("value with separator wrote %v", st.writes)
	}
	if got := st.rows[2].config; got != "db.local;5432;alice;secret;mydb;" {
		t.Errorf("stored config = %q", got)
	}
	if _, ok := m.configs.State().(pane.Selected); !ok {
		t.Errorf("state after refused commit = %#v", m.configs.State())
	}
}

func TestRemoveField(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	m, _ = press(t, m, keyUp, keyRight, keyRight, keyDown, runes("r"))
	if got := st.rows[2].config; got != "db.local;;alice;secret;mydb;" {
		t.Errorf("stored config = %q", got)
	}
	if m.configs.At(1).Value != "" {
		t.Errorf("pane still shows %q", m.configs.At(1).Value)
	}
}

func TestDeleteLastShortcutSeedsCustom(t *testing.T) {
	st := newFakeStore(row{store.Shortcut{Name: "only", Kind: scheme.Redis}, ""})
	m := newTestModel(st, &fakeLauncher{})

	m, _ = press(t, m, runes("r"))
	if len(st.rows) != 1 {
		t.Fatalf("rows = %+v", st.rows)
	}
	if st.rows[0].sc != (store.Shortcut{Name: "Default0", Kind: scheme.Custom}) {
		t.Errorf("seeded %+v", st.rows[0].sc)
	}
	if m.current().Name != "Default0" {
		t.Errorf("pane shows %q", m.current().Name)
	}
}

func TestDeleteMovesSelectionUp(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	m, _ = press(t, m, keyDown, keyDown, runes("r"))
	if m.shortcuts.Row() != 1 || m.current().Name != "m1" {
		t.Errorf("after delete row=%d name=%q", m.shortcuts.Row(), m.current().Name)
	}
}

func TestPopupCreatesNamedShortcut(t *testing.T) {
	st := newFakeStore(
		row{store.Shortcut{Name: "Default0", Kind: scheme.Custom}, "echo"},
		row{store.Shortcut{Name: "Default3", Kind: scheme.Custom}, "echo"},
		row{store.Shortcut{Name: "Other", Kind: scheme.Custom}, "echo"},
	)
	m := newTestModel(st, &fakeLauncher{})

	m, _ = press(t, m, keyDown, runes("a"))
	if !m.popup.visible || m.focused() != focusNone {
		t.Fatalf("popup not open: %+v", m.popup)
	}

	m, _ = press(t, m, keyUp, keyDown, keyDown)
	if m.popup.highlighted != 1 {
		t.Errorf("highlighted = %d", m.popup.highlighted)
	}

	m, _ = press(t, m, keyEnter)
	if m.popup.visible {
		t.Error("popup still visible")
	}
	last := st.rows[len(st.rows)-1]
	if last.sc != (store.Shortcut{Name: "Default4", Kind: scheme.MySQL}) {
		t.Errorf("created %+v", last.sc)
	}
	if last.config != strings.Repeat("Required;", 6)+"Required" {
		t.Errorf("placeholders = %q", last.config)
	}
	if s := m.shortcuts.State(); s != (pane.Selected{Row: 1, Column: 0}) {
		t.Errorf("focus after create = %#v", s)
	}
}

func TestPopupCancel(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})

	m, cmd := press(t, m, runes("a"), runes("q"))
	if m.popup.visible || len(st.writes) != 0 {
		t.Errorf("popup=%v writes=%v", m.popup.visible, st.writes)
	}
	if cmd != nil {
		t.Error("q in the popup must not quit")
	}
	if !pane.IsFocused(m.shortcuts.State()) {
		t.Errorf("shortcuts state = %#v", m.shortcuts.State())
	}
}

func TestOpenCustomLaunchesLiteralCommand(t *testing.T) {
	st := newFakeStore(row{store.Shortcut{Name: "hi", Kind: scheme.Custom}, "echo hi"})
	l := &fakeLauncher{}
	m := newTestModel(st, l)

	_, cmd := press(t, m, runes("o"))
	if cmd == nil {
		t.Fatal("expected a launch command")
	}
	msg, ok := cmd().(LaunchedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("msg = %#v", msg)
	}
	if len(l.launched) != 1 || l.launched[0] != "echo hi" {
		t.Errorf("launched %v", l.launched)
	}
}

func TestUpperCaseCommandKeys(t *testing.T) {
	st := threeShortcuts()
	l := &fakeLauncher{}
	m := newTestModel(st, l)

	_, cmd := press(t, m, runes("O"))
	if cmd == nil {
		t.Fatal("O did not open")
	}
	cmd()
	if len(l.launched) != 1 || l.launched[0] != "echo one" {
		t.Errorf("launched %v", l.launched)
	}

	m, _ = press(t, m, runes("E"))
	if _, ok := m.shortcuts.State().(pane.Editing); !ok {
		t.Errorf("E did not start editing: %#v", m.shortcuts.State())
	}
	m, _ = press(t, m, keyEsc, runes("A"))
	if !m.popup.visible {
		t.Error("A did not open the popup")
	}
}

func TestOpenBuildsFromConfigPane(t *testing.T) {
	l := &fakeLauncher{}
	m := newTestModel(threeShortcuts(), l)

	// Focus on the configuration pane still opens the highlighted shortcut
	_, cmd := press(t, m, keyUp, keyRight, keyRight, runes("o"))
	cmd()
	if len(l.launched) != 1 || !strings.Contains(l.launched[0], "-h db.local -p 5432 -U alice -d mydb") {
		t.Errorf("launched %v", l.launched)
	}
}

func TestMaskToggle(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.masked {
		t.Fatal("masking should default to on")
	}
	if !strings.Contains(m.View(), "********") {
		t.Error("masked view does not hide the value")
	}

	m, _ = press(t, m, runes("h"))
	if m.masked {
		t.Error("h did not toggle masking")
	}
	if got := m.configs.At(0).Value; got != "echo one" {
		t.Errorf("masking changed the value to %q", got)
	}
}

func TestPreviewMasksPasswords(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	m, _ = press(t, m, keyUp)

	if got := m.previewCommand(); strings.Contains(got, "secret") || !strings.Contains(got, maskedSecret) {
		t.Errorf("masked preview = %q", got)
	}
	m, _ = press(t, m, runes("h"))
	if got := m.previewCommand(); !strings.Contains(got, "PGPASSWORD='secret'") {
		t.Errorf("unmasked preview = %q", got)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), runes("Q"), keyEsc} {
		m := newTestModel(threeShortcuts(), &fakeLauncher{})
		_, cmd := press(t, m, k)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestProbeResultShownForCurrentShortcut(t *testing.T) {
	m := newTestModel(threeShortcuts(), &fakeLauncher{})
	m = m.WithProber(func(_ context.Context, kind string, fields []string) error {
		if kind != scheme.Custom || fields[0] != "echo one" {
			return errors.New("unexpected target")
		}
		return nil
	})

	m, cmd := press(t, m, runes("t"))
	if m.probeStatus == "" || cmd == nil {
		t.Fatalf("probe not started: %q", m.probeStatus)
	}
	m, _ = press(t, m, cmd())
	if m.probeStatus != "reachable" {
		t.Errorf("status = %q", m.probeStatus)
	}

	m, _ = press(t, m, keyDown)
	if m.probeStatus != "" {
		t.Errorf("status kept after moving: %q", m.probeStatus)
	}
}

func TestStoreFailureKeepsLastState(t *testing.T) {
	st := threeShortcuts()
	m := newTestModel(st, &fakeLauncher{})
	m, _ = press(t, m, keyDown)

	st.failAll = true
	m, _ = press(t, m, keyDown)
	if m.shortcuts.Len() != 3 || m.current().Name != "p1" {
		t.Errorf("pane lost its values: %+v", m.shortcuts.Values())
	}
}
