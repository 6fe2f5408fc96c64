package restore

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Defaults for the positional arguments.
const (
	DefaultDBName        = "manna"
	DefaultDBUser        = "postgres"
	DefaultDBHost        = "localhost"
	DefaultDBPort        = "5432"
	DefaultDumpFile      = "manna_full.sql"
	DefaultMaintenanceDB = "postgres"
)

// LoaderKind selects how the dump is fed to the server.
type LoaderKind string

const (
	LoaderNative LoaderKind = "native"
	LoaderPsql   LoaderKind = "psql"
)

// Options describes one restore run.
type Options struct {
	DBName        string
	DBUser        string
	DBHost        string
	DBPort        string
	Password      string
	SSLMode       string
	DumpFile      string
	Loader        LoaderKind
	MaintenanceDB string
	Yes           bool
}

// ApplyArgs fills the connection fields from up to four positional arguments
// in the order DB_NAME DB_USER DB_HOST DB_PORT. Missing ones take defaults.
func (o *Options) ApplyArgs(args []string) error {
	if len(args) > 4 {
		return fmt.Errorf("expected at most 4 arguments, got %d", len(args))
	}
	positional := []*string{&o.DBName, &o.DBUser, &o.DBHost, &o.DBPort}
	defaults := []string{DefaultDBName, DefaultDBUser, DefaultDBHost, DefaultDBPort}
	for i, field := range positional {
		*field = defaults[i]
		if i < len(args) && args[i] != "" {
			*field = args[i]
		}
	}
	return o.Validate()
}

// Validate checks the fields that would otherwise fail deep inside a connection attempt.
func (o *Options) Validate() error {
	port, err := strconv.Atoi(o.DBPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", o.DBPort)
	}
	switch o.Loader {
	case LoaderNative, LoaderPsql:
	case "":
		o.Loader = LoaderNative
	default:
		return fmt.Errorf("unknown loader %q (want native or psql)", o.Loader)
	}
	if o.DBName == o.MaintenanceDB {
		return fmt.Errorf("target database %q is the maintenance database", o.DBName)
	}
	return nil
}

// URL returns a postgres connection URL for database on the configured server.
func (o Options) URL(database string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(o.DBHost, o.DBPort),
		Path:   "/" + database,
	}
	if o.Password != "" {
		u.User = url.UserPassword(o.DBUser, o.Password)
	} else {
		u.User = url.User(o.DBUser)
	}
	if o.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", o.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
