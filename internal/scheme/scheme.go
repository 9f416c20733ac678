// internal/scheme/scheme.go
// Package scheme maps a shortcut kind to the ordered field labels of its configuration.
package scheme

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags which scheme and which command builder apply to a shortcut
type Kind = string

const (
	Oracle     Kind = "Oracle"
	MySQL      Kind = "MySQL"
	MariaDB    Kind = "MariaDB"
	PostgreSQL Kind = "PostgreSQL"
	SQLite     Kind = "SQLite"
	Redis      Kind = "Redis"
	MongoDB    Kind = "MongoDB"
	Neo4j      Kind = "Neo4j"
	Custom     Kind = "Custom"
)

// Field labels
const (
	LabelHost         = "Host"
	LabelPort         = "Port"
	LabelUsername     = "Username"
	LabelPassword     = "Password"
	LabelDatabase     = "Database"
	LabelSocket       = "Socket"
	LabelScriptPath   = "Script Path"
	LabelDatabasePath = "Database Path"
	LabelCommand      = "Command"
	LabelAuthDatabase = "Auth Database"
	LabelShellCommand = "Shell Command"
	LabelUnknown      = "Unknown"
)

// Separator joins field values inside the stored configuration string
const Separator = ";"

// Placeholder is written into every field of a freshly created shortcut
const Placeholder = "Required"

// WelcomeCommand is the default command of a new Custom shortcut
const WelcomeCommand = "echo Welcome on MyShortcuts !"

var (
	classic = []string{LabelHost, LabelPort, LabelUsername, LabelPassword, LabelDatabase, LabelScriptPath}
	socket  = []string{LabelHost, LabelPort, LabelUsername, LabelPassword, LabelDatabase, LabelSocket, LabelScriptPath}
	file    = []string{LabelDatabasePath, LabelScriptPath}
	redis   = []string{LabelHost, LabelPort, LabelUsername, LabelPassword, LabelDatabase, LabelCommand}
	mongodb = []string{LabelHost, LabelPort, LabelUsername, LabelPassword, LabelAuthDatabase, LabelScriptPath}
	custom  = []string{LabelShellCommand}
	unknown = []string{LabelUnknown}
)

var registry = map[Kind][]string{
	Oracle:     classic,
	PostgreSQL: classic,
	Neo4j:      classic,
	MySQL:      socket,
	MariaDB:    socket,
	SQLite:     file,
	Redis:      redis,
	MongoDB:    mongodb,
	Custom:     custom,
}

// creationKinds is the order the kind picker offers
var creationKinds = []Kind{Oracle, MySQL, MariaDB, PostgreSQL, SQLite, Redis, MongoDB, Neo4j, Custom}

// Field is one positional configuration value and its label
type Field struct {
	Value string
	Label string
}

// Labels returns the ordered field labels for kind.
// Unknown kinds degrade to a single "Unknown" field.
func Labels(kind Kind) []string {
	labels, ok := registry[kind]
	if !ok {
		labels = unknown
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Known reports whether kind has a registered scheme
func Known(kind Kind) bool {
	_, ok := registry[kind]
	return ok
}

// Len returns the number of fields for kind
func Len(kind Kind) int {
	return len(Labels(kind))
}

// CreationKinds returns the kinds offered by the creation popup
func CreationKinds() []Kind {
	out := make([]Kind, len(creationKinds))
	copy(out, creationKinds)
	return out
}

// Placeholders returns the field values written for a new shortcut of kind
func Placeholders(kind Kind) []string {
	if kind == Custom {
		return []string{WelcomeCommand}
	}
	values := make([]string, Len(kind))
	for i := range values {
		values[i] = Placeholder
	}
	return values
}

// Project splits a stored configuration string into the scheme of kind.
// Missing values become empty strings and extra values are dropped, so the
// result always has exactly Len(kind) fields. Single-field schemes keep the
// whole string, separators included.
func Project(kind Kind, raw string) []Field {
	labels := Labels(kind)
	var parts []string
	if len(labels) == 1 {
		parts = []string{raw}
	} else {
		parts = strings.Split(raw, Separator)
	}

	fields := make([]Field, len(labels))
	for i, label := range labels {
		fields[i].Label = label
		if i < len(parts) {
			fields[i].Value = strings.TrimRight(parts[i], "\r\n")
		}
	}
	return fields
}

// Join concatenates values with Separator in scheme order
func Join(values []string) string {
	return strings.Join(values, Separator)
}

// Values extracts the field values in order
func Values(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}

// ErrReserved is returned for names and values that would break the stored
// row format
var ErrReserved = errors.New("contains a reserved character")

// CheckName refuses names holding the separator or a line break
func CheckName(name string) error {
	if strings.ContainsAny(name, Separator+"\r\n") {
		return fmt.Errorf("name %q: %w", name, ErrReserved)
	}
	return nil
}

// CheckValue refuses line breaks in any value, and the separator in values of
// multi-field schemes where it would shift every later field.
func CheckValue(kind Kind, value string) error {
	reserved := "\r\n"
	if Len(kind) > 1 {
		reserved += Separator
	}
	if strings.ContainsAny(value, reserved) {
		return fmt.Errorf("%s value %q: %w", kind, value, ErrReserved)
	}
	return nil
}

var defaultName = regexp.MustCompile(`^Default([0-9]+)$`)

// NextName returns Default<N+1> where N is the highest suffix among names of
// the form Default<N> with N plain decimal digits. With no such name the first
// generated name is Default0.
func NextName(names []string) string {
	highest := -1
	for _, name := range names {
		m := defaultName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return "Default" + strconv.Itoa(highest+1)
}
