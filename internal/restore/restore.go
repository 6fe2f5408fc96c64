package restore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	ErrDumpNotFound = errors.New("dump file not found")
	ErrEmptyRestore = errors.New("restore produced no tables")
)

// Restorer drops and recreates the target database, then loads the dump into it.
type Restorer struct {
	OpenAdmin func(ctx context.Context, dsn string) (DatabaseAdmin, error)
	Loader    Loader
	Logger    *slog.Logger
}

// NewRestorer wires the database/sql admin and the given loader.
func NewRestorer(loader Loader, logger *slog.Logger) *Restorer {
	return &Restorer{OpenAdmin: OpenAdmin, Loader: loader, Logger: logger}
}

// Run executes one restore. Any failure aborts the remaining steps.
func (r *Restorer) Run(ctx context.Context, opts Options) error {
	info, err := os.Stat(opts.DumpFile)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDumpNotFound, opts.DumpFile)
	}

	logger := r.Logger.With(
		slog.String("database", opts.DBName),
		slog.String("host", opts.DBHost),
		slog.String("port", opts.DBPort),
	)

	if err := r.recreate(ctx, opts, logger); err != nil {
		return err
	}

	logger.Info("Loading dump", slog.String("file", opts.DumpFile), slog.Int64("bytes", info.Size()), slog.String("loader", string(opts.Loader)))
	if err := r.Loader.Load(ctx, opts); err != nil {
		return fmt.Errorf("load dump: %w", err)
	}

	tables, err := r.verify(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("Restore complete", slog.Int("tables", tables))
	return nil
}

func (r *Restorer) recreate(ctx context.Context, opts Options, logger *slog.Logger) error {
	admin, err := r.OpenAdmin(ctx, opts.URL(opts.MaintenanceDB))
	if err != nil {
		return fmt.Errorf("connect to maintenance database %s: %w", opts.MaintenanceDB, err)
	}
	defer admin.Close()

	terminated, err := admin.TerminateSessions(ctx, opts.DBName)
	if err != nil {
		return err
	}
	if terminated > 0 {
		logger.Info("Terminated open sessions", slog.Int64("sessions", terminated))
	}

	logger.Info("Dropping database")
	if err := admin.DropDatabase(ctx, opts.DBName); err != nil {
		return err
	}
	logger.Info("Creating database", slog.String("owner", opts.DBUser))
	return admin.CreateDatabase(ctx, opts.DBName, opts.DBUser)
}

func (r *Restorer) verify(ctx context.Context, opts Options) (int, error) {
	admin, err := r.OpenAdmin(ctx, opts.URL(opts.DBName))
	if err != nil {
		return 0, fmt.Errorf("connect to restored database: %w", err)
	}
	defer admin.Close()

	n, err := admin.CountTables(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrEmptyRestore
	}
	return n, nil
}
