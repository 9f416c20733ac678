// internal/launcher/launcher.go
// Package launcher hands a synthesized command to a new terminal window.
package launcher

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// EnvMarker is set in the environment of the instance running inside the tmux session
const EnvMarker = "MYSHORTCUTSLAUNCH"

// Defaults
const (
	DefaultSession = "myshortcuts"
	DefaultShell   = "powershell.exe"
	handoffName    = "current_command.txt"
)

// Runner executes external programs. Output is used for fire-and-forget tmux
// commands, Interactive for commands that take over the terminal.
type Runner interface {
	Output(name string, args ...string) ([]byte, error)
	Interactive(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

func (execRunner) Interactive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Options configures a Launcher. Zero values fall back to the defaults.
type Options struct {
	Session     string
	Shell       string
	HandoffFile string

	Runner   Runner
	GOOS     string
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// Launcher writes commands to the hand-off file and opens them in a new window
type Launcher struct {
	session string
	shell   string
	handoff string

	runner   Runner
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)

	mu      sync.Mutex
	waiting bool
	wg      sync.WaitGroup
}

// DefaultHandoffPath returns the hand-off file location in the XDG state dir
func DefaultHandoffPath() (string, error) {
	return xdg.StateFile("myshortcuts/" + handoffName)
}

// New creates a Launcher
func New(opts Options) *Launcher {
	l := &Launcher{
		session:  opts.Session,
		shell:    opts.Shell,
		handoff:  opts.HandoffFile,
		runner:   opts.Runner,
		goos:     opts.GOOS,
		getenv:   opts.Getenv,
		lookPath: opts.LookPath,
	}
	if l.session == "" {
		l.session = DefaultSession
	}
	if l.shell == "" {
		l.shell = DefaultShell
	}
	if l.handoff == "" {
		if p, err := DefaultHandoffPath(); err == nil {
			l.handoff = p
		} else {
			l.handoff = filepath.Join(os.TempDir(), handoffName)
		}
	}
	if l.runner == nil {
		l.runner = execRunner{}
	}
	if l.goos == "" {
		l.goos = runtime.GOOS
	}
	if l.getenv == nil {
		l.getenv = os.Getenv
	}
	if l.lookPath == nil {
		l.lookPath = exec.LookPath
	}
	return l
}

// HandoffFile returns the path commands are written to
func (l *Launcher) HandoffFile() string {
	return l.handoff
}

// Launch writes command to the hand-off file and dispatches it without
// waiting. Only the file write can fail; dispatch errors are logged. The file
// records the latest command only; each dispatch sends the text it was given.
// Once Wait has been called, launches are dispatched synchronously.
func (l *Launcher) Launch(command string) error {
	if l.goos == "windows" {
		command = strings.ReplaceAll(command, " && ", " ; ")
	}

	if err := os.MkdirAll(filepath.Dir(l.handoff), 0700); err != nil {
		return fmt.Errorf("failed to create hand-off dir: %w", err)
	}
	if err := os.WriteFile(l.handoff, []byte(command), 0600); err != nil {
		return fmt.Errorf("failed to write hand-off file: %w", err)
	}

	l.mu.Lock()
	if l.waiting {
		l.mu.Unlock()
		if err := l.dispatch(command); err != nil {
			log.Printf("launcher: %v", err)
		}
		return nil
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		if err := l.dispatch(command); err != nil {
			log.Printf("launcher: %v", err)
		}
	}()
	return nil
}

// Wait blocks until every dispatched launch has finished
func (l *Launcher) Wait() {
	l.mu.Lock()
	l.waiting = true
	l.mu.Unlock()
	l.wg.Wait()
}

// powershellQuote wraps s in a single-quoted PowerShell string literal
func powershellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (l *Launcher) dispatch(command string) error {
	if l.goos == "windows" {
		script := fmt.Sprintf(
			"Start-Process %s -ArgumentList '-NoExit', '-Command', %s",
			l.shell, powershellQuote(command))
		if out, err := l.runner.Output(l.shell, "-NoProfile", "-Command", script); err != nil {
			return fmt.Errorf("powershell launch failed: %w: %s", err, out)
		}
		return nil
	}

	out, err := l.runner.Output("tmux", "new-window", "-d", "-t", l.session+":", "-P", "-F", "#{window_index}")
	if err != nil {
		return fmt.Errorf("tmux new-window failed: %w: %s", err, out)
	}
	target := fmt.Sprintf("%s:%s", l.session, strings.TrimSpace(string(out)))
	if out, err := l.runner.Output("tmux", "send-keys", "-t", target, command, "C-m"); err != nil {
		return fmt.Errorf("tmux send-keys failed: %w: %s", err, out)
	}
	log.Printf("launcher: command sent to %s", target)
	return nil
}

// Bootstrap moves the program into the tmux session when it is not already
// running there. It reports whether it did so; when false the caller runs the
// TUI in place.
func (l *Launcher) Bootstrap(exe string) (bool, error) {
	if l.getenv(EnvMarker) != "" || l.goos == "windows" {
		return false, nil
	}
	if _, err := l.lookPath("tmux"); err != nil {
		log.Printf("launcher: tmux not found, running in place")
		return false, nil
	}

	start := fmt.Sprintf("export %s=1 && %s", EnvMarker, exe)
	first := l.session + ":0"

	if _, err := l.runner.Output("tmux", "has-session", "-t", l.session); err != nil {
		if out, err := l.runner.Output("tmux", "new-session", "-d", "-s", l.session); err != nil {
			return false, fmt.Errorf("tmux new-session failed: %w: %s", err, out)
		}
		if out, err := l.runner.Output("tmux", "send-keys", "-t", first+".0", start, "C-m"); err != nil {
			return false, fmt.Errorf("tmux send-keys failed: %w: %s", err, out)
		}
	} else if !l.hasWindow("0") {
		if out, err := l.runner.Output("tmux", "new-window", "-t", first); err != nil {
			return false, fmt.Errorf("tmux new-window failed: %w: %s", err, out)
		}
		if out, err := l.runner.Output("tmux", "send-keys", "-t", first+".0", start, "C-m"); err != nil {
			return false, fmt.Errorf("tmux send-keys failed: %w: %s", err, out)
		}
	}

	if l.getenv("TMUX") == "" {
		return true, l.runner.Interactive("tmux", "attach", "-t", l.session)
	}
	if out, err := l.runner.Output("tmux", "switch-client", "-t", l.session); err != nil {
		return true, fmt.Errorf("tmux switch-client failed: %w: %s", err, out)
	}
	return true, nil
}

func (l *Launcher) hasWindow(index string) bool {
	out, err := l.runner.Output("tmux", "list-windows", "-t", l.session, "-F", "#{window_index}")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == index {
			return true
		}
	}
	return false
}
