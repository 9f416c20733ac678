package pane

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Input is an in-progress edit buffer. It wraps a focused, single-line
// textinput and returns an updated copy from Update.
type Input struct {
	model textinput.Model
}

// NewInput seeds a buffer with value and puts the cursor at its end
func NewInput(value string) Input {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.KeyMap.Paste.SetEnabled(false)
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return Input{model: ti}
}

// Value returns the buffer content
func (in Input) Value() string {
	return in.model.Value()
}

// Cursor returns the cursor offset in runes
func (in Input) Cursor() int {
	return in.model.Position()
}

// Len returns the buffer length in runes
func (in Input) Len() int {
	return utf8.RuneCountInString(in.model.Value())
}

// Update applies an editing key. A key that would empty a non-empty buffer is
// dropped, so a committed value cannot become empty through editing.
func (in Input) Update(msg tea.KeyMsg) Input {
	// textinput edits its rune slice in place; detach it from in first
	model := in.model
	model.SetValue(in.model.Value())
	next, _ := model.Update(msg)
	if next.Value() == "" && in.model.Value() != "" {
		return in
	}
	return Input{model: next}
}

// View draws the buffer with a static cursor
func (in Input) View() string {
	return in.model.View()
}
