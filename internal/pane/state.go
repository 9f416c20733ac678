// internal/pane/state.go
package pane

// State is the selection state of one pane. It is one of Selected,
// WasSelected or Editing.
type State interface {
	isState()
}

// Selected means the pane has input focus on cell (Row, Column)
type Selected struct {
	Row    int
	Column int
}

// WasSelected means the pane is visible but inactive and keeps its row for
// when focus comes back
type WasSelected struct {
	Row int
}

// Editing means the value cell of Row is being edited. Column is the column
// that was selected before the edit started and is restored on commit.
type Editing struct {
	Row    int
	Column int
	Input  Input
}

func (Selected) isState()    {}
func (WasSelected) isState() {}
func (Editing) isState()     {}

// LastColumn is the index of the value column; panes have two columns
const LastColumn = 1

// RowOf returns the row carried by any state
func RowOf(s State) int {
	switch s := s.(type) {
	case Selected:
		return s.Row
	case WasSelected:
		return s.Row
	case Editing:
		return s.Row
	default:
		return 0
	}
}

// IsFocused reports whether s receives input (Selected or Editing)
func IsFocused(s State) bool {
	switch s.(type) {
	case Selected, Editing:
		return true
	default:
		return false
	}
}

// Blur turns any state into WasSelected on the same row
func Blur(s State) State {
	return WasSelected{Row: RowOf(s)}
}

// withRow returns s with its row replaced
func withRow(s State, row int) State {
	switch s := s.(type) {
	case Selected:
		s.Row = row
		return s
	case WasSelected:
		s.Row = row
		return s
	case Editing:
		s.Row = row
		return s
	default:
		return WasSelected{Row: row}
	}
}

func clampColumn(c int) int {
	if c < 0 {
		return 0
	}
	if c > LastColumn {
		return LastColumn
	}
	return c
}
