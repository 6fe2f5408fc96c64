package restore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/jackc/pgx/v5"
)

// Loader feeds a dump file into the freshly created target database.
type Loader interface {
	Load(ctx context.Context, opts Options) error
}

// NewLoader returns the loader selected by opts.Loader.
func NewLoader(opts Options, logger *slog.Logger) (Loader, error) {
	switch opts.Loader {
	case LoaderNative, "":
		return &NativeLoader{logger: logger}, nil
	case LoaderPsql:
		return &PsqlLoader{logger: logger, stdout: os.Stderr, stderr: os.Stderr}, nil
	default:
		return nil, fmt.Errorf("unknown loader %q", opts.Loader)
	}
}

// statementExecer is the part of a pgx connection the native loader needs.
type statementExecer interface {
	Exec(ctx context.Context, sql string) error
	CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error)
}

type pgxExecer struct {
	conn *pgx.Conn
}

func (e pgxExecer) Exec(ctx context.Context, sql string) error {
	_, err := e.conn.Exec(ctx, sql)
	return err
}

func (e pgxExecer) CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error) {
	tag, err := e.conn.PgConn().CopyFrom(ctx, r, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// NativeLoader executes the dump statement by statement over a single pgx
// connection, streaming COPY blocks through the copy protocol.
type NativeLoader struct {
	logger *slog.Logger
}

func (l *NativeLoader) Load(ctx context.Context, opts Options) error {
	f, err := os.Open(opts.DumpFile)
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	conn, err := pgx.Connect(ctx, opts.URL(opts.DBName))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", opts.DBName, err)
	}
	defer func() {
		if cerr := conn.Close(context.Background()); cerr != nil {
			l.logger.Warn("Error closing restore connection", slog.String("error", cerr.Error()))
		}
	}()

	return loadStatements(ctx, NewSplitter(f), pgxExecer{conn: conn}, l.logger)
}

func loadStatements(ctx context.Context, sp *Splitter, db statementExecer, logger *slog.Logger) error {
	var statements, rows int64
	for {
		stmt, err := sp.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}

		if stmt.IsCopy() {
			n, err := db.CopyFrom(ctx, bytes.NewReader(stmt.CopyData), stmt.SQL)
			if err != nil {
				return fmt.Errorf("dump line %d: copy: %w", stmt.Line, err)
			}
			rows += n
		} else if err := db.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("dump line %d: %w", stmt.Line, err)
		}

		statements++
		if statements%500 == 0 {
			logger.Debug("Restore progress", slog.Int64("statements", statements), slog.Int64("rows", rows))
		}
	}
	logger.Info("Dump loaded", slog.Int64("statements", statements), slog.Int64("copied_rows", rows))
	return nil
}

// PsqlLoader hands the dump to the psql client, stopping at the first error.
type PsqlLoader struct {
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (l *PsqlLoader) Load(ctx context.Context, opts Options) error {
	cmd := exec.CommandContext(ctx, "psql", psqlArgs(opts)...)
	cmd.Env = os.Environ()
	if opts.Password != "" {
		cmd.Env = append(cmd.Env, "PGPASSWORD="+opts.Password)
	}
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	l.logger.Info("Running psql", slog.String("file", opts.DumpFile))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("psql: %w", err)
	}
	return nil
}

func psqlArgs(opts Options) []string {
	return []string{
		"-v", "ON_ERROR_STOP=1",
		"-q",
		"-h", opts.DBHost,
		"-p", opts.DBPort,
		"-U", opts.DBUser,
		"-d", opts.DBName,
		"-f", opts.DumpFile,
	}
}
