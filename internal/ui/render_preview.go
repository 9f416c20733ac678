// internal/ui/render_preview.go
package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/myshortcuts/internal/scheme"
)

const maskedSecret = "****"

// previewCommand is the command 'o' would launch, with passwords masked
// while masking is on
func (m Model) previewCommand() string {
	fields := m.configs.Values()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value
		if m.masked && f.Label == scheme.LabelPassword && f.Value != "" {
			values[i] = maskedSecret
		}
	}
	return commandFor(m.current(), values)
}

// highlightShell colors cmd with chroma's bash lexer, falling back to plain text
func highlightShell(cmd string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, cmd, "bash", "terminal256", "nord"); err != nil {
		return cmd
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPreview(width int) string {
	cmd := m.previewCommand()
	if cmd == "" {
		return PreviewStyle.Width(width).Render(MetaStyle.Render("no command"))
	}
	return PreviewStyle.Width(width).Render(TitleStyle.Render("$ ") + highlightShell(cmd))
}

func overlayCenter(fg, bg string) string {
	return overlay.Composite(fg, bg, overlay.Center, overlay.Center, 0, 0)
}
