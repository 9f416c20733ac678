// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	DatabasePath        string   `toml:"database_path"`
	LogFile             string   `toml:"log_file"`
	MaskValues          bool     `toml:"mask_values"`
	EncryptPasswords    bool     `toml:"encrypt_passwords"`
	ProbeTimeoutSeconds int      `toml:"probe_timeout_seconds"`
	Debug               bool     `toml:"debug"`
	Launcher            Launcher `toml:"launcher"`
	Theme               Theme    `toml:"theme_colors"`
	Keys                KeyMap   `toml:"keys"`

	path string
}

// Launcher configures where launched commands go
type Launcher struct {
	Session     string `toml:"session"`
	Shell       string `toml:"shell"`
	HandoffFile string `toml:"handoff_file"`
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	PopupBg       string `toml:"popup_bg"`
	BorderColor   string `toml:"border_color"`
	SelectedBg    string `toml:"selected_bg"`
}

// KeyMap defines key bindings
type KeyMap struct {
	Up     []string `toml:"up"`
	Down   []string `toml:"down"`
	Left   []string `toml:"left"`
	Right  []string `toml:"right"`
	Add    []string `toml:"add"`
	Edit   []string `toml:"edit"`
	Remove []string `toml:"remove"`
	Open   []string `toml:"open"`
	Hide   []string `toml:"hide"`
	Probe  []string `toml:"probe"`
	Save   []string `toml:"save"`
	Cancel []string `toml:"cancel"`
	Quit   []string `toml:"quit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		MaskValues:          true,
		EncryptPasswords:    true,
		ProbeTimeoutSeconds: 5,
		Launcher: Launcher{
			Session: "myshortcuts",
			Shell:   "powershell.exe",
		},
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			PopupBg:       "#434C5E",
			BorderColor:   "#4C566A",
			SelectedBg:    "#5E81AC",
		},
		Keys: KeyMap{
			Up:     []string{"up"},
			Down:   []string{"down"},
			Left:   []string{"left"},
			Right:  []string{"right"},
			Add:    []string{"a", "A"},
			Edit:   []string{"e", "E"},
			Remove: []string{"r", "R"},
			Open:   []string{"o", "O"},
			Hide:   []string{"h", "H"},
			Probe:  []string{"t", "T"},
			Save:   []string{"enter"},
			Cancel: []string{"esc"},
			Quit:   []string{"q", "Q"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("myshortcuts/config.toml")
}

// Load loads the config from disk or creates default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the config stored at path, creating it with defaults on first run
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Decode over the defaults so scalar keys missing from the file keep them
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	cfg.path = path

	// Populate defaults for missing sections (migration)
	defaults := DefaultConfig()
	updated := false

	if !md.IsDefined("theme_colors") || cfg.Theme.TextPrimary == "" {
		cfg.Theme = defaults.Theme
		updated = true
	}
	if !md.IsDefined("keys") {
		updated = true
	}
	cfg.Keys.fill(defaults.Keys)
	if cfg.ProbeTimeoutSeconds <= 0 {
		cfg.ProbeTimeoutSeconds = defaults.ProbeTimeoutSeconds
	}
	if cfg.Launcher.Session == "" {
		cfg.Launcher.Session = defaults.Launcher.Session
	}

	if updated {
		// Persist defaults so the user can see and edit them
		if err := cfg.Save(); err != nil {
			log.Printf("config: failed to persist defaults: %v", err)
		}
	}

	return cfg, nil
}

// fill replaces empty bindings with the defaults
func (k *KeyMap) fill(d KeyMap) {
	pairs := []struct{ dst, src *[]string }{
		{&k.Up, &d.Up}, {&k.Down, &d.Down}, {&k.Left, &d.Left}, {&k.Right, &d.Right},
		{&k.Add, &d.Add}, {&k.Edit, &d.Edit}, {&k.Remove, &d.Remove}, {&k.Open, &d.Open},
		{&k.Hide, &d.Hide}, {&k.Probe, &d.Probe}, {&k.Save, &d.Save}, {&k.Cancel, &d.Cancel},
		{&k.Quit, &d.Quit},
	}
	for _, p := range pairs {
		if len(*p.dst) == 0 {
			*p.dst = *p.src
		}
	}
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Create/truncate file with secure permissions (owner read/write only)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
