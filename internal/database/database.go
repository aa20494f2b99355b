package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"
)

// dsn builds a properly encoded connection string for Oracle Autonomous Database
func dsn(username, password, host, port, service string, walletLocation string) string {
	if walletLocation != "" {
		// Use wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			url.PathEscape(username), url.PathEscape(password), host, port, service, url.PathEscape(walletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password), // escapes automatically
		Host:     host + ":" + port,
		Path:     "/" + service, // keep full service name
		RawQuery: "ssl=true",    // ADB requires TCPS on 1522
	}).String()
}

// sqliteURIEscaper escapes the characters that would otherwise end the path
// of a file: URI or be read as an escape.
var sqliteURIEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// sqliteDSN opens the dataset file read-only so a mistyped path fails instead
// of creating an empty database.
func sqliteDSN(path string) string {
	return "file:" + sqliteURIEscaper.Replace(path) + "?mode=ro"
}

// DBConfig holds database connection configuration
type DBConfig struct {
	Driver         string        `yaml:"driver"`
	Path           string        `yaml:"path"`
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	Service        string        `yaml:"service"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	WalletLocation string        `yaml:"wallet_location"`
	QueryTimeout   time.Duration `yaml:"query_timeout"`
}

// Database is the read-only data source adapter. It holds configuration only;
// a connection is opened for each query and closed before the call returns.
type Database struct {
	config     DBConfig
	driverName string
	connStr    string
}

// NewDatabase validates the configuration and prepares the connection string.
func NewDatabase(config DBConfig) (*Database, error) {
	d := &Database{config: config}
	switch config.Driver {
	case DriverSQLite, "":
		if _, err := os.Stat(config.Path); err != nil {
			return nil, fmt.Errorf("failed to open dataset %s: %w", config.Path, err)
		}
		d.driverName = "sqlite"
		d.connStr = sqliteDSN(config.Path)
	case DriverOracle:
		d.driverName = "oracle"
		d.connStr = dsn(config.Username, config.Password, config.Host, config.Port, config.Service, config.WalletLocation)
	default:
		return nil, fmt.Errorf("unsupported driver %q", config.Driver)
	}
	return d, nil
}

// Driver reports the configured driver name.
func (d *Database) Driver() string {
	return d.driverName
}

// Ping opens a connection and checks the store answers.
func (d *Database) Ping(ctx context.Context) error {
	return d.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	})
}

// withConn opens a connection, runs fn, and closes the connection on every path.
func (d *Database) withConn(ctx context.Context, fn func(context.Context, *sql.DB) error) (err error) {
	if d.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.QueryTimeout)
		defer cancel()
	}

	db, err := sql.Open(d.driverName, d.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database connection: %w", cerr)
		}
	}()

	return fn(ctx, db)
}

// query runs a parameterised statement and hands every row to scan.
func (d *Database) query(ctx context.Context, q string, args []any, scan func(*sql.Rows) error) error {
	return d.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, d.rebind(q), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// queryStrings runs a single-column query.
func (d *Database) queryStrings(ctx context.Context, q string, args ...any) ([]string, error) {
	var out []string
	err := d.query(ctx, q, args, func(rows *sql.Rows) error {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return err
		}
		if s.Valid {
			out = append(out, s.String)
		}
		return nil
	})
	return out, err
}

// rebind rewrites ? placeholders to the :N form go-ora expects.
func (d *Database) rebind(q string) string {
	if d.driverName != DriverOracle {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders creates ?,?,? for an IN list of n previously fetched values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
