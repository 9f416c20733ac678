// internal/pane/pane.go
// Package pane holds the list-plus-selection model shared by the shortcut and
// configuration panes.
package pane

// Model is an ordered list of values plus the pane's selection state.
// The list is never empty: SetValues replaces an empty slice with a single
// fallback value so row 0 is always valid.
type Model[T any] struct {
	values   []T
	state    State
	fallback T
	title    string
	header   [2]string
}

// New creates a pane showing fallback until values are set
func New[T any](title string, header [2]string, fallback T, state State) Model[T] {
	m := Model[T]{
		values:   []T{fallback},
		fallback: fallback,
		title:    title,
		header:   header,
	}
	m.SetState(state)
	return m
}

// Values returns the current values
func (m *Model[T]) Values() []T {
	return m.values
}

// Len returns the number of rows, always at least 1
func (m *Model[T]) Len() int {
	return len(m.values)
}

// At returns the value at row, wrapping out-of-range rows
func (m *Model[T]) At(row int) T {
	return m.values[m.wrap(row)]
}

// SetValues replaces the list. An empty list becomes the fallback value.
// The selected row is clamped to the new length.
func (m *Model[T]) SetValues(values []T) {
	if len(values) == 0 {
		m.values = []T{m.fallback}
	} else {
		m.values = values
	}
	row := RowOf(m.state)
	if row >= len(m.values) {
		m.state = withRow(m.state, len(m.values)-1)
	}
}

// State returns the selection state
func (m *Model[T]) State() State {
	return m.state
}

// SetState sets the selection state. Rows wrap modulo Len and the column of
// a Selected state is clamped to the two available columns.
func (m *Model[T]) SetState(s State) {
	if s == nil {
		s = WasSelected{}
	}
	if sel, ok := s.(Selected); ok {
		sel.Column = clampColumn(sel.Column)
		s = sel
	}
	if ed, ok := s.(Editing); ok {
		ed.Column = clampColumn(ed.Column)
		s = ed
	}
	m.state = withRow(s, m.wrap(RowOf(s)))
}

// Row returns the row carried by the current state
func (m *Model[T]) Row() int {
	return RowOf(m.state)
}

// Title is the pane's border title
func (m *Model[T]) Title() string {
	return m.title
}

// Header returns the two column labels
func (m *Model[T]) Header() [2]string {
	return m.header
}

func (m *Model[T]) wrap(row int) int {
	n := len(m.values)
	row %= n
	if row < 0 {
		row += n
	}
	return row
}
