// internal/command/command.go
// Package command turns a shortcut's field values into the shell command that
// opens its client.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nhath/myshortcuts/internal/scheme"
)

// ErrUnknownKind is returned for kinds without a builder
var ErrUnknownKind = errors.New("no command builder for kind")

// Builder synthesizes a command from ordered field values
type Builder func(fields []string) string

var builders = map[string]Builder{
	scheme.Oracle:     Oracle,
	scheme.MySQL:      MySQL,
	scheme.MariaDB:    MariaDB,
	scheme.PostgreSQL: PostgreSQL,
	scheme.SQLite:     SQLite,
	scheme.Redis:      Redis,
	scheme.MongoDB:    MongoDB,
	scheme.Neo4j:      Neo4j,
}

// Build returns the command for kind. Trailing empty fields are trimmed
// before the builder sees them. Custom shortcuts are not built: their single
// field is the command.
func Build(kind string, fields []string) (string, error) {
	b, ok := builders[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return b(TrimTrailing(fields)), nil
}

// TrimTrailing drops empty (or newline-only) values from the end of fields
func TrimTrailing(fields []string) []string {
	end := len(fields)
	for end > 0 && strings.TrimRight(fields[end-1], "\r\n") == "" {
		end--
	}
	return fields[:end]
}

// at returns fields[i] or "" when out of range
func at(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

type flag struct {
	index int
	name  string
}

// appendFlags adds "name value" for every non-empty field
func appendFlags(parts []string, fields []string, flags []flag) []string {
	for _, f := range flags {
		if v := at(fields, f.index); v != "" {
			parts = append(parts, f.name+" "+v)
		}
	}
	return parts
}

func inconsistent(kind string, fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return fmt.Sprintf("echo 'Inconsistent %s arguments : [%s]'", kind, strings.Join(quoted, ", "))
}

// PostgreSQL: Host, Port, Username, Password, Database, Script Path
func PostgreSQL(fields []string) string {
	var parts []string
	if pw := at(fields, 3); pw != "" {
		parts = append(parts, fmt.Sprintf("export PGPASSWORD='%s' &&", pw))
	}
	parts = append(parts, "psql")
	parts = appendFlags(parts, fields, []flag{{0, "-h"}, {1, "-p"}, {2, "-U"}, {4, "-d"}, {5, "-f"}})
	return strings.Join(parts, " ")
}

// MySQL: Host, Port, Username, Password, Database, Socket, Script Path
func MySQL(fields []string) string {
	parts := []string{"mysql"}
	parts = appendFlags(parts, fields, []flag{{0, "-h"}, {1, "-P"}, {2, "-u"}})
	if pw := at(fields, 3); pw != "" {
		parts = append(parts, fmt.Sprintf("-p'%s'", pw))
	}
	if sock := at(fields, 5); sock != "" {
		parts = append(parts, "--protocol=socket -S "+sock)
	}
	if db := at(fields, 4); db != "" {
		parts = append(parts, db)
	}
	if script := at(fields, 6); script != "" {
		parts = append(parts, "< "+script)
	}
	return strings.Join(parts, " ")
}

// MariaDB uses the MySQL flags with the mariadb client
func MariaDB(fields []string) string {
	return "mariadb" + strings.TrimPrefix(MySQL(fields), "mysql")
}

// SQLite: Database Path, Script Path
func SQLite(fields []string) string {
	db, script := at(fields, 0), at(fields, 1)
	switch {
	case db != "" && script != "":
		return fmt.Sprintf("sqlite3 %s < %s", db, script)
	case db != "":
		return "sqlite3 " + db
	default:
		return inconsistent(scheme.SQLite, fields)
	}
}

// Oracle: Host, Port, Username, Password, Database, Script Path
func Oracle(fields []string) string {
	host, port := at(fields, 0), at(fields, 1)
	user, pw := at(fields, 2), at(fields, 3)
	if host == "" || port == "" || user == "" || pw == "" {
		return inconsistent(scheme.Oracle, fields)
	}

	connect := fmt.Sprintf("%s/%s@%s:%s", user, pw, host, port)
	if db := at(fields, 4); db != "" {
		connect += "/" + db
	}
	if script := at(fields, 5); script != "" {
		return fmt.Sprintf("echo exit | sqlplus -s %s @%s", connect, script)
	}
	return "sqlplus " + connect
}

// MongoDB: Host, Port, Username, Password, Auth Database, Script Path
func MongoDB(fields []string) string {
	parts := appendFlags([]string{"mongosh"}, fields, []flag{
		{0, "--host"}, {1, "--port"}, {2, "-u"}, {3, "-p"}, {4, "--authenticationDatabase"}, {5, "-f"},
	})
	return strings.Join(parts, " ")
}

// Redis: Host, Port, Username, Password, Database, Command
func Redis(fields []string) string {
	parts := appendFlags([]string{"redis-cli"}, fields, []flag{
		{0, "-h"}, {1, "-p"}, {2, "--user"}, {3, "-a"}, {4, "-n"}, {5, "--eval"},
	})
	return strings.Join(parts, " ")
}

// Neo4j: Host, Port, Username, Password, Database, Script Path
func Neo4j(fields []string) string {
	parts := []string{"cypher-shell"}
	if host, port := at(fields, 0), at(fields, 1); host != "" && port != "" {
		parts = append(parts, fmt.Sprintf("-a neo4j://%s:%s", host, port))
	}
	parts = appendFlags(parts, fields, []flag{{2, "-u"}, {3, "-p"}, {4, "-d"}, {5, "-f"}})
	return strings.Join(parts, " ")
}
