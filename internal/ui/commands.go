// internal/ui/commands.go
package ui

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/command"
	"github.com/nhath/myshortcuts/internal/probe"
	"github.com/nhath/myshortcuts/internal/scheme"
	"github.com/nhath/myshortcuts/internal/store"
)

// fallbackCommand is launched for kinds no builder knows
const fallbackCommand = "echo 'Welcome on MyShortcuts !'"

// commandFor returns the command a shortcut runs. Custom shortcuts run their
// single field verbatim.
func commandFor(sc store.Shortcut, values []string) string {
	if sc.Kind == scheme.Custom {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	cmd, err := command.Build(sc.Kind, values)
	if errors.Is(err, command.ErrUnknownKind) {
		log.Printf("ui: %v", err)
		return fallbackCommand
	}
	return cmd
}

// open hands the command of the highlighted shortcut to the launcher. The
// launch runs as a tea.Cmd so the input loop never waits on it.
func (m *Model) open() tea.Cmd {
	sc := m.current()
	cmd := commandFor(sc, scheme.Values(m.configs.Values()))
	if cmd == "" {
		log.Printf("ui: %q has no command to launch", sc.Name)
		return nil
	}

	l := m.launcher
	if l == nil {
		log.Printf("ui: no launcher configured")
		return nil
	}
	return func() tea.Msg {
		return LaunchedMsg{Command: cmd, Err: l.Launch(cmd)}
	}
}

// probe checks the highlighted shortcut in the background
func (m *Model) probe() tea.Cmd {
	sc := m.current()
	values := scheme.Values(m.configs.Values())
	check := m.prober
	timeout := time.Duration(m.config.ProbeTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	m.probeFor, m.probeStatus, m.probeErr = sc.Name, "testing…", false
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ProbeResultMsg{Name: sc.Name, Err: check(ctx, sc.Kind, values)}
	}
}

func (m *Model) setProbeResult(msg ProbeResultMsg) {
	switch {
	case msg.Err == nil:
		m.probeStatus, m.probeErr = "reachable", false
	case errors.Is(msg.Err, probe.ErrNotProbeable):
		m.probeStatus, m.probeErr = "not testable", false
	default:
		m.probeStatus, m.probeErr = "unreachable", true
	}
	log.Printf("ui: probe %q: %s (%v)", msg.Name, m.probeStatus, msg.Err)
}
