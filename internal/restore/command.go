package restore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrAborted = errors.New("restore aborted")

// NewCommand builds the manna_restore command.
func NewCommand() *cobra.Command {
	var (
		opts    Options
		loader  string
		verbose bool
	)
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "manna_restore [DB_NAME] [DB_USER] [DB_HOST] [DB_PORT]",
		Short: "Drop, recreate and reload a Manna database from a SQL dump",
		Long: `Drops the target database, creates it again owned by DB_USER and loads a
plain-format SQL dump into it.

Defaults: DB_NAME=manna DB_USER=postgres DB_HOST=localhost DB_PORT=5432.
The password is read from PGPASSWORD; the dump file from --file or MANNA_DUMP_FILE.`,
		Args:         cobra.MaximumNArgs(4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Loader = LoaderKind(loader)
			opts.DumpFile = v.GetString("file")
			opts.Password = v.GetString("password")
			if err := opts.ApplyArgs(args); err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			if !opts.Yes && isTerminal(cmd.InOrStdin()) {
				ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), opts)
				if err != nil {
					return err
				}
				if !ok {
					return ErrAborted
				}
			}

			l, err := NewLoader(opts, logger)
			if err != nil {
				return err
			}
			if err := NewRestorer(l, logger).Run(cmd.Context(), opts); err != nil {
				logger.Error("Restore failed", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", DefaultDumpFile, "path to the plain SQL dump")
	cmd.Flags().StringVar(&loader, "loader", string(LoaderNative), "dump loader: native or psql")
	cmd.Flags().StringVar(&opts.MaintenanceDB, "maintenance-db", DefaultMaintenanceDB, "database to connect to while dropping and creating the target")
	cmd.Flags().StringVar(&opts.SSLMode, "sslmode", "prefer", "libpq sslmode for every connection")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log restore progress")

	_ = v.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = v.BindEnv("file", "MANNA_DUMP_FILE")
	_ = v.BindEnv("password", "PGPASSWORD")

	return cmd
}

func confirm(in io.Reader, out io.Writer, opts Options) (bool, error) {
	fmt.Fprintf(out, "This drops database %q on %s:%s and reloads it from %s. Continue? [y/N] ",
		opts.DBName, opts.DBHost, opts.DBPort, opts.DumpFile)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
