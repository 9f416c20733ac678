// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// FileName is the SQLite file created under the data directory
const FileName = "my_shortcuts.db"

// Null is how an absent value is rendered by Read
const Null = "null"

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS shortcuts (
		name          TEXT PRIMARY KEY,
		configuration TEXT,
		type          TEXT
	);
`

// DB is the record store adapter. Read renders result rows as text: one row
// per line, every column followed by ';', absent values as "null".
type DB struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the XDG data path of the store
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join("myshortcuts", FileName))
}

// Exists reports whether a store file is already present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens (creating if needed) the SQLite file at path
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, WrapStoreError("open", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, WrapStoreError("open", err)
	}
	// A single connection keeps statements serialized on one file handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, WrapStoreError("open", fmt.Errorf("pragma busy_timeout: %w", err))
	}

	return &DB{db: db, path: path}, nil
}

// Init creates the shortcuts table when missing
func (d *DB) Init(ctx context.Context) error {
	return d.Write(ctx, schemaDDL)
}

// Path returns the file backing the store
func (d *DB) Path() string {
	return d.path
}

// Close closes the database handle
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Write executes a statement that returns no rows
func (d *DB) Write(ctx context.Context, query string, args ...any) error {
	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return WrapStoreError("write", err)
	}
	return nil
}

// Read executes a query and renders its rows as text
func (d *DB) Read(ctx context.Context, query string, args ...any) (string, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", WrapStoreError("read", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", WrapStoreError("read", err)
	}

	var out strings.Builder
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", WrapStoreError("read", err)
		}
		for _, v := range values {
			out.WriteString(formatValue(v))
			out.WriteString(";")
		}
		out.WriteString("\n")
	}
	if err := rows.Err(); err != nil {
		return "", WrapStoreError("read", err)
	}
	return out.String(), nil
}

// formatValue converts a scanned column to its text form
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return Null
	case []byte:
		return string(val)
	case string:
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
