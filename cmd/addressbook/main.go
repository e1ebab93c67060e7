package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/commands"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/config"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/logger"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/postgres"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/sqlite"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	flags := config.Config{}

	cmd := &cobra.Command{
		Use:   "addressbook",
		Short: "An interactive assistant for your contacts and their birthdays",
		Long: `addressbook keeps contacts with their phone numbers and birthdays.

It reads commands from standard input until close or exit, then saves the
address book. Type help at the prompt for the list of commands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			overrideFromFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			log, closer := logger.New(logger.Options{
				Level:  cfg.Logging.Level,
				File:   cfg.Logging.File,
				Format: cfg.Logging.Format,
			})
			defer func() { _ = closer.Close() }()
			slog.SetDefault(log)

			return run(cmd.Context(), cfg, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&flags.Storage.Kind, "store", "", "where to keep contacts: file, sqlite or postgres")
	f.StringVarP(&flags.Storage.Path, "data", "d", "", "address book file for the file and sqlite stores")
	f.StringVar(&flags.Storage.Format, "format", "", "file store format: json or yaml (default from the file extension)")
	f.StringVar(&flags.Storage.DSN, "dsn", "", "postgres connection string")
	f.IntVarP(&flags.Birthdays.WindowDays, "window", "w", 0, "days ahead the birthdays command looks")
	f.StringVar(&flags.Logging.Level, "log-level", "", "debug, info, warn or error")
	f.StringVar(&flags.Logging.Format, "log-format", "", "text or json")
	f.StringVar(&flags.Logging.File, "log-file", "", "append logs to this file instead of stderr")
	return cmd
}

// overrideFromFlags copies every flag the user set into cfg.
func overrideFromFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	changed := cmd.Flags().Changed
	for name, apply := range map[string]func(){
		"store":      func() { cfg.Storage.Kind = flags.Storage.Kind },
		"data":       func() { cfg.Storage.Path = flags.Storage.Path },
		"format":     func() { cfg.Storage.Format = flags.Storage.Format },
		"dsn":        func() { cfg.Storage.DSN = flags.Storage.DSN },
		"window":     func() { cfg.Birthdays.WindowDays = flags.Birthdays.WindowDays },
		"log-level":  func() { cfg.Logging.Level = flags.Logging.Level },
		"log-format": func() { cfg.Logging.Format = flags.Logging.Format },
		"log-file":   func() { cfg.Logging.File = flags.Logging.File },
	} {
		if changed(name) {
			apply()
		}
	}
}

func run(ctx context.Context, cfg config.Config, cmd *cobra.Command) error {
	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.InfoContext(ctx, "starting session", slog.String("store", cfg.Storage.Kind))
	shell := commands.Shell{Store: store, WindowDays: cfg.Birthdays.WindowDays, Now: time.Now}
	return shell.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, func(), error) {
	switch cfg.Kind {
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil

	case config.StorePostgres:
		conn, err := pgx.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to db: %w", err)
		}
		closeConn := func() { _ = conn.Close(context.Background()) }

		db, err := postgres.New(ctx, conn)
		if err != nil {
			closeConn()
			return nil, nil, fmt.Errorf("initializing db: %w", err)
		}
		return db, closeConn, nil

	default:
		s, err := storage.NewFile(cfg.Path, cfg.Format)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
