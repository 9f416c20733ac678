// internal/probe/probe.go
// Package probe checks whether the target of a shortcut is reachable.
package probe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nhath/myshortcuts/internal/scheme"
)

var (
	// ErrNotProbeable is returned for kinds that have no network target
	ErrNotProbeable = errors.New("kind cannot be probed")
	// ErrIncomplete is returned when the fields needed to reach the target are empty
	ErrIncomplete = errors.New("missing connection fields")
)

var defaultPorts = map[string]string{
	scheme.Oracle:     "1521",
	scheme.MySQL:      "3306",
	scheme.MariaDB:    "3306",
	scheme.PostgreSQL: "5432",
	scheme.Redis:      "6379",
	scheme.MongoDB:    "27017",
	scheme.Neo4j:      "7687",
}

// target holds the connection fields shared by the networked schemes
type target struct {
	host, port, user, password, database, socket string
}

func field(fields []string, i int) string {
	if i < len(fields) && fields[i] != scheme.Placeholder {
		return fields[i]
	}
	return ""
}

func parseTarget(kind string, fields []string) target {
	t := target{
		host:     field(fields, 0),
		port:     field(fields, 1),
		user:     field(fields, 2),
		password: field(fields, 3),
		database: field(fields, 4),
	}
	if kind == scheme.MySQL || kind == scheme.MariaDB {
		t.socket = field(fields, 5)
	}
	if t.port == "" {
		t.port = defaultPorts[kind]
	}
	return t
}

func (t target) addr() string {
	return net.JoinHostPort(t.host, t.port)
}

// Check probes the target described by fields. The context bounds the whole
// check.
func Check(ctx context.Context, kind string, fields []string) error {
	if !scheme.Known(kind) {
		return fmt.Errorf("%w: unknown kind %s", ErrNotProbeable, kind)
	}
	switch kind {
	case scheme.SQLite:
		return checkSQLite(ctx, field(fields, 0))
	case scheme.Custom:
		return ErrNotProbeable
	}
	if _, ok := defaultPorts[kind]; !ok {
		return fmt.Errorf("%w: %s", ErrNotProbeable, kind)
	}

	t := parseTarget(kind, fields)
	if t.host == "" && t.socket == "" {
		return fmt.Errorf("%w: host", ErrIncomplete)
	}

	switch kind {
	case scheme.MySQL, scheme.MariaDB:
		return checkMySQL(ctx, t)
	case scheme.PostgreSQL:
		return checkPostgres(ctx, t)
	default:
		return checkTCP(ctx, t.addr())
	}
}

func checkTCP(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn.Close()
}

func checkMySQL(ctx context.Context, t target) error {
	cfg := mysql.NewConfig()
	cfg.User = t.user
	cfg.Passwd = t.password
	cfg.DBName = t.database
	if t.socket != "" {
		cfg.Net = "unix"
		cfg.Addr = t.socket
	} else {
		cfg.Net = "tcp"
		cfg.Addr = t.addr()
	}
	if deadline, ok := ctx.Deadline(); ok {
		cfg.Timeout = time.Until(deadline)
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql ping: %w", err)
	}
	return nil
}

func checkPostgres(ctx context.Context, t target) error {
	u := &url.URL{
		Scheme: "postgres",
		Host:   t.addr(),
		Path:   "/" + t.database,
	}
	if t.user != "" {
		u.User = url.UserPassword(t.user, t.password)
	}

	connConfig, err := pgx.ParseConfig(u.String())
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer conn.Close(context.Background())

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

func checkSQLite(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: database path", ErrIncomplete)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("sqlite query: %w", err)
	}
	return nil
}
