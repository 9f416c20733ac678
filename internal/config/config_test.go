package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/99designs/keyring"
)

func TestLoadFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myshortcuts", "config.toml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Keys, DefaultConfig().Keys) {
		t.Errorf("keys = %+v", cfg.Keys)
	}
	if !cfg.MaskValues || cfg.ProbeTimeoutSeconds != 5 || cfg.Debug {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config perm = %v", info.Mode().Perm())
	}
}

func TestLoadFileBackfillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
mask_values = false
debug = true
database_path = "/tmp/x.db"

[keys]
quit = ["ctrl+c"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaskValues {
		t.Error("mask_values from file was overridden")
	}
	if !cfg.Debug {
		t.Error("debug from file was ignored")
	}
	if cfg.DatabasePath != "/tmp/x.db" {
		t.Errorf("database_path = %q", cfg.DatabasePath)
	}
	if !reflect.DeepEqual(cfg.Keys.Quit, []string{"ctrl+c"}) {
		t.Errorf("quit = %v", cfg.Keys.Quit)
	}
	if !reflect.DeepEqual(cfg.Keys.Open, []string{"o", "O"}) {
		t.Errorf("open not back-filled: %v", cfg.Keys.Open)
	}
	if cfg.Theme.Accent == "" || cfg.Launcher.Session != "myshortcuts" {
		t.Errorf("theme/launcher not back-filled: %+v", cfg)
	}

	// The back-filled theme is persisted
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "theme_colors") {
		t.Errorf("persisted config missing theme:\n%s", data)
	}
}

func TestLoadFileRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("mask_values = = true"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealerWithKey([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := s.Seal("secret")
	if err != nil {
		t.Fatal(err)
	}
	if sealed == "secret" {
		t.Fatal("value not sealed")
	}
	plain, err := s.Open(sealed)
	if err != nil || plain != "secret" {
		t.Errorf("Open = %q, %v", plain, err)
	}

	other, _ := NewSealerWithKey([]byte("fedcba9876543210fedcba9876543210"))
	if _, err := other.Open(sealed); err == nil {
		t.Error("expected wrong key to fail")
	}
	if _, err := NewSealerWithKey([]byte("short")); err == nil {
		t.Error("expected invalid key length to fail")
	}
}

func TestMasterKeyIsStable(t *testing.T) {
	ks := &KeyringStore{ring: keyring.NewArrayKeyring(nil)}

	first, err := masterKey(ks)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 32 {
		t.Errorf("key length = %d", len(first))
	}
	second, err := masterKey(ks)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("master key changed between calls")
	}
}

// lockedStore fails every read the way a locked keyring backend does
type lockedStore struct{ sets int }

func (l *lockedStore) Get(string) (string, error) { return "", errors.New("keyring is locked") }

func (l *lockedStore) Set(string, string) error {
	l.sets++
	return nil
}

func TestMasterKeyIsNotReplacedOnReadFailure(t *testing.T) {
	ks := &lockedStore{}
	if _, err := masterKey(ks); err == nil {
		t.Fatal("expected the read failure to be returned")
	}
	if ks.sets != 0 {
		t.Errorf("master key was overwritten %d times", ks.sets)
	}
}
