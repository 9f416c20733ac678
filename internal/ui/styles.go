// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/myshortcuts/internal/config"
)

var (
	// Colors (exported via getter functions below)
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	popupBg     lipgloss.Color
	borderColor lipgloss.Color
	selectedBg  lipgloss.Color

	// Styles
	PaneStyle          lipgloss.Style
	FocusedPaneStyle   lipgloss.Style
	TitleStyle         lipgloss.Style
	FocusedTitleStyle  lipgloss.Style
	HeaderStyle        lipgloss.Style
	RowStyle           lipgloss.Style
	HighlightRowStyle  lipgloss.Style
	SelectedCellStyle  lipgloss.Style
	EditCellStyle      lipgloss.Style
	PopupStyle         lipgloss.Style
	PopupItemStyle     lipgloss.Style
	PopupSelectedStyle lipgloss.Style
	PreviewStyle       lipgloss.Style
	MetaStyle          lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
)

// AccentColor is the color of focused borders and popup headings
func AccentColor() lipgloss.Color { return accentColor }

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	// Initialize Colors
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	popupBg = lipgloss.Color(theme.PopupBg)
	borderColor = lipgloss.Color(theme.BorderColor)
	selectedBg = lipgloss.Color(theme.SelectedBg)

	// Initialize Styles
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	FocusedPaneStyle = PaneStyle.
		BorderForeground(accentColor)

	TitleStyle = lipgloss.NewStyle().
		Foreground(textSecondary).
		Bold(true)

	FocusedTitleStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(accentColor).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	RowStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	HighlightRowStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	SelectedCellStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(selectedBg).
		Bold(true)

	EditCellStyle = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Background(popupBg).
		Padding(1, 2)

	PopupItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(popupBg).
		Padding(0, 1)

	PopupSelectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(highlightColor).
		Bold(true).
		Padding(0, 1)

	PreviewStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(textFaint).
		Padding(0, 1)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)
}
