// cmd/myshortcuts/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/myshortcuts/internal/config"
	"github.com/nhath/myshortcuts/internal/launcher"
	"github.com/nhath/myshortcuts/internal/store"
	"github.com/nhath/myshortcuts/internal/ui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logging always goes to a file since the terminal belongs to the TUI
	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = xdg.StateFile("myshortcuts/log.txt"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve log path: %v\n", err)
			os.Exit(1)
		}
	}
	f, err := tea.LogToFile(logPath, "myshortcuts")
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: could not open log: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	l := launcher.New(launcher.Options{
		Session:     cfg.Launcher.Session,
		Shell:       cfg.Launcher.Shell,
		HandoffFile: cfg.Launcher.HandoffFile,
	})

	// Outside the tmux session, start there and attach instead of running here
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	moved, err := l.Bootstrap(exe)
	if err != nil {
		log.Printf("bootstrap: %v", err)
	}
	if moved {
		return
	}

	// Open the store; failing to create it on first run is fatal
	dbPath := cfg.DatabasePath
	if dbPath == "" {
		if dbPath, err = store.DefaultPath(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve database path: %v\n", err)
			os.Exit(1)
		}
	}
	firstRun := !store.Exists(dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize %s: %v\n", dbPath, err)
		os.Exit(1)
	}

	var sealer store.Sealer
	if cfg.EncryptPasswords {
		if s, err := config.NewSealer(); err != nil {
			log.Printf("password sealing disabled: %v", err)
		} else {
			sealer = s
		}
	}
	shortcuts := store.NewShortcuts(db, sealer)

	if _, err := shortcuts.EnsureNotEmpty(ctx); err != nil {
		if firstRun {
			fmt.Fprintf(os.Stderr, "Failed to seed %s: %v\n", dbPath, err)
			os.Exit(1)
		}
		log.Printf("seeding store: %v", err)
	}
	log.Printf("store %s ready (first run: %v)", dbPath, firstRun)

	model := ui.NewModel(cfg, shortcuts, l).WithDebug(cfg.Debug)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Let launches started just before quitting reach tmux
	l.Wait()
}
