// internal/ui/model_render.go
package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/myshortcuts/internal/pane"
	"github.com/nhath/myshortcuts/internal/scheme"
)

const (
	colLeft  = "left"
	colRight = "right"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth

	shortcutRows := make([][2]string, 0, m.shortcuts.Len())
	for _, sc := range m.shortcuts.Values() {
		shortcutRows = append(shortcutRows, [2]string{sc.Kind, sc.Name})
	}
	configRows := make([][2]string, 0, m.configs.Len())
	for _, f := range m.configs.Values() {
		value := f.Value
		if m.masked {
			value = strings.Repeat("*", utf8.RuneCountInString(value))
		}
		configRows = append(configRows, [2]string{f.Label, value})
	}

	configTitle := m.configs.Title()
	if m.probeStatus != "" {
		status := SuccessStyle
		if m.probeErr {
			status = ErrorStyle
		}
		configTitle += "· " + status.Render(m.probeStatus) + " "
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		renderPane(m.shortcuts.Title(), m.shortcuts.Header(), shortcutRows, m.shortcuts.State(), leftWidth),
		renderPane(configTitle, m.configs.Header(), configRows, m.configs.State(), rightWidth),
	)

	view := lipgloss.JoinVertical(lipgloss.Left,
		panes,
		m.renderPreview(m.width),
		m.renderHelp(),
	)

	if m.popup.visible {
		view = m.renderKindPopup(view)
	}
	return view
}

// renderPane draws one pane as a two-column table. The highlighted row follows
// the pane's row; the selected cell, or the edit caret, sits in its column.
func renderPane(title string, header [2]string, rows [][2]string, state pane.State, width int) string {
	focused := pane.IsFocused(state)
	row := pane.RowOf(state)

	column := -1
	var edit *pane.Editing
	switch s := state.(type) {
	case pane.Selected:
		column = s.Column
	case pane.Editing:
		edit = &s
	case pane.WasSelected:
	}

	leftWidth := lipgloss.Width(header[0])
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > leftWidth {
			leftWidth = w
		}
	}
	leftWidth += 2
	// borders of the pane and of the table, plus the column separator
	rightWidth := width - leftWidth - 5
	if rightWidth < 6 {
		rightWidth = 6
	}

	cols := []bbtable.Column{
		bbtable.NewColumn(colLeft, header[0], leftWidth),
		bbtable.NewColumn(colRight, header[1], rightWidth),
	}

	tableRows := make([]bbtable.Row, 0, len(rows))
	for i, r := range rows {
		data := bbtable.RowData{colLeft: r[0], colRight: r[1]}
		if i == row {
			switch {
			case edit != nil:
				data[colRight] = bbtable.NewStyledCell(edit.Input.View(), EditCellStyle)
			case column == 0:
				data[colLeft] = bbtable.NewStyledCell(r[0], SelectedCellStyle)
			case column == 1:
				data[colRight] = bbtable.NewStyledCell(r[1], SelectedCellStyle)
			}
		}
		tableRows = append(tableRows, bbtable.NewRow(data).WithStyle(RowStyle))
	}

	table := bbtable.New(cols).
		WithRows(tableRows).
		WithBaseStyle(RowStyle).
		HeaderStyle(HeaderStyle).
		HighlightStyle(HighlightRowStyle).
		WithHighlightedRow(row).
		Focused(focused).
		WithFooterVisibility(false).
		BorderRounded()

	titleStyle, boxStyle := TitleStyle, PaneStyle
	if focused {
		titleStyle, boxStyle = FocusedTitleStyle, FocusedPaneStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), table.View())
	return boxStyle.Width(width - 2).Render(content)
}

func (m Model) renderHelp() string {
	var keys help.KeyMap = browseKeys{m.keys}
	switch {
	case m.popup.visible:
		keys = popupKeys{m.keys}
	case m.editing():
		keys = editKeys{m.keys}
	}
	return m.help.View(keys)
}

// renderKindPopup composites the kind picker over main
func (m Model) renderKindPopup(main string) string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("New shortcut"))
	content.WriteString("\n\n")

	for i, kind := range m.kinds {
		style := PopupItemStyle
		if i == m.popup.highlighted {
			style = PopupSelectedStyle
		}
		content.WriteString(style.Width(20).Render(kind))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(MetaStyle.Render(fmt.Sprintf("%d fields", scheme.Len(m.kinds[m.popup.highlighted]))))

	return overlayCenter(PopupStyle.Render(content.String()), main)
}
