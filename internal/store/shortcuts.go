// internal/store/shortcuts.go
package store

import (
	"context"
	"log"
	"strings"

	"github.com/nhath/myshortcuts/internal/scheme"
)

// Shortcut is a named reference to one external tool invocation
type Shortcut struct {
	Name string
	Kind string
}

// DefaultShortcut stands in for rows that cannot be parsed and for an empty list
func DefaultShortcut() Shortcut {
	return Shortcut{Name: "DefaultName", Kind: "UnknownKind"}
}

// Adapter is the statement-level read/write contract of the record store
type Adapter interface {
	Read(ctx context.Context, query string, args ...any) (string, error)
	Write(ctx context.Context, query string, args ...any) error
}

// Sealer encrypts and decrypts secret field values
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// sealedPrefix marks a stored value produced by a Sealer
const sealedPrefix = "enc:"

// Shortcuts is the typed repository over the shortcuts table
type Shortcuts struct {
	db     Adapter
	sealer Sealer
}

// NewShortcuts creates a repository. sealer may be nil to store secrets as typed.
func NewShortcuts(db Adapter, sealer Sealer) *Shortcuts {
	return &Shortcuts{db: db, sealer: sealer}
}

// ParseShortcut parses a "name;kind;" row
func ParseShortcut(row string) (Shortcut, error) {
	parts := strings.Split(row, ";")
	if len(parts) < 2 || parts[0] == "" {
		return Shortcut{}, &ParseError{Row: row}
	}
	return Shortcut{Name: parts[0], Kind: parts[1]}, nil
}

// List returns every shortcut ordered by kind. Rows that fail to parse are
// replaced by DefaultShortcut.
func (s *Shortcuts) List(ctx context.Context) ([]Shortcut, error) {
	out, err := s.db.Read(ctx, "SELECT name, type FROM shortcuts ORDER BY type, name")
	if err != nil {
		return nil, err
	}

	var shortcuts []Shortcut
	for _, row := range strings.Split(out, "\n") {
		if strings.TrimSpace(row) == "" {
			continue
		}
		sc, err := ParseShortcut(row)
		if err != nil {
			log.Printf("store: %v", err)
			sc = DefaultShortcut()
		}
		shortcuts = append(shortcuts, sc)
	}
	return shortcuts, nil
}

// Fields reads the configuration of sc projected onto the scheme of its kind
func (s *Shortcuts) Fields(ctx context.Context, sc Shortcut) ([]scheme.Field, error) {
	out, err := s.db.Read(ctx, "SELECT configuration FROM shortcuts WHERE name = ?", sc.Name)
	if err != nil {
		return nil, err
	}

	// One row, one column: strip the row terminator to recover the raw string.
	raw := strings.TrimSuffix(out, "\n")
	raw = strings.TrimSuffix(raw, ";")
	if raw == Null {
		raw = ""
	}

	fields := scheme.Project(sc.Kind, raw)
	for i := range fields {
		fields[i].Value = s.unseal(fields[i].Value)
	}
	return fields, nil
}

// Create inserts a new shortcut with the given field values
func (s *Shortcuts) Create(ctx context.Context, sc Shortcut, values []string) error {
	if err := scheme.CheckName(sc.Name); err != nil {
		return err
	}
	if err := checkValues(sc.Kind, values); err != nil {
		return err
	}
	return s.db.Write(ctx,
		"INSERT INTO shortcuts (name, configuration, type) VALUES (?, ?, ?)",
		sc.Name, scheme.Join(s.seal(sc.Kind, values)), sc.Kind)
}

// Rename changes the name of the shortcut stored as oldName
func (s *Shortcuts) Rename(ctx context.Context, oldName, newName string) error {
	if err := scheme.CheckName(newName); err != nil {
		return err
	}
	return s.db.Write(ctx, "UPDATE shortcuts SET name = ? WHERE name = ?", newName, oldName)
}

// SaveFields replaces the whole configuration of sc
func (s *Shortcuts) SaveFields(ctx context.Context, sc Shortcut, values []string) error {
	if err := checkValues(sc.Kind, values); err != nil {
		return err
	}
	return s.db.Write(ctx,
		"UPDATE shortcuts SET configuration = ? WHERE name = ?",
		scheme.Join(s.seal(sc.Kind, values)), sc.Name)
}

// Delete removes the shortcut called name
func (s *Shortcuts) Delete(ctx context.Context, name string) error {
	return s.db.Write(ctx, "DELETE FROM shortcuts WHERE name = ?", name)
}

// EnsureNotEmpty seeds one Custom welcome shortcut when the table is empty.
// It reports whether a row was inserted.
func (s *Shortcuts) EnsureNotEmpty(ctx context.Context) (bool, error) {
	shortcuts, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if len(shortcuts) > 0 {
		return false, nil
	}
	welcome := Shortcut{Name: scheme.NextName(nil), Kind: scheme.Custom}
	if err := s.Create(ctx, welcome, scheme.Placeholders(scheme.Custom)); err != nil {
		return false, err
	}
	return true, nil
}

func checkValues(kind string, values []string) error {
	for _, v := range values {
		if err := scheme.CheckValue(kind, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shortcuts) seal(kind string, values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	if s.sealer == nil {
		return out
	}
	labels := scheme.Labels(kind)
	for i := range out {
		if i >= len(labels) || labels[i] != scheme.LabelPassword {
			continue
		}
		if out[i] == "" || out[i] == scheme.Placeholder || strings.HasPrefix(out[i], sealedPrefix) {
			continue
		}
		sealed, err := s.sealer.Seal(out[i])
		if err != nil {
			log.Printf("store: sealing %s failed, keeping plain value: %v", labels[i], err)
			continue
		}
		out[i] = sealedPrefix + sealed
	}
	return out
}

func (s *Shortcuts) unseal(value string) string {
	if s.sealer == nil || !strings.HasPrefix(value, sealedPrefix) {
		return value
	}
	plain, err := s.sealer.Open(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		log.Printf("store: unsealing value failed: %v", err)
		return value
	}
	return plain
}
