package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/config"
	"github.com/Joseda-hg/taskify/internal/logger"
)

var (
	configPath string
	guestFlag  bool
	userFlag   string
	verbose    bool

	// app is set up by the root command before any subcommand runs.
	app *session
)

var rootCmd = &cobra.Command{
	Use:   "taskify",
	Short: "Tasks and notes with one relevance-ranked search",
	Long: `Taskify keeps tasks and notes in a SQLite or MySQL database, or in a
local guest profile, and searches both at once.

Run without a subcommand to open the terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		output, err := logOutput(cmd, cfg)
		if err != nil {
			return err
		}
		log := logger.New("cli", logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: output})
		log.WithField("config", path).Debug("config loaded")

		app, err = openSession(cfg, log)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
	RunE: runTUI,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if app != nil {
			_ = app.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&guestFlag, "guest", false, "use the local guest profile instead of the database")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user id owning the records")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig layers the config file, .env, TASKIFY_* variables and flags, in
// that order.
func loadConfig() (config.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, "", err
		}
	}

	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, "", err
	}

	if guestFlag {
		cfg.Guest = true
	}
	if userFlag != "" {
		cfg.UserID = userFlag
		cfg.Guest = false
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Resolve(path); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// logOutput keeps the terminal UI clean: its logs go to the configured file
// or nowhere.
func logOutput(cmd *cobra.Command, cfg config.Config) (io.Writer, error) {
	if cmd != rootCmd && cmd != tuiCmd {
		return os.Stderr, nil
	}
	if cfg.LogFile == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

var errNoUser = errors.New("no user selected: pass --user <id> or --guest")
