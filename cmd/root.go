package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/config"
	"github.com/abhisek/examlens/internal/report"
	"github.com/abhisek/examlens/internal/store"
)

// cfg is loaded once per invocation before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "examlens",
	Short: "Behaviour analytics for exam practice",
	Long: `ExamLens - reads answer attempts from exam practice and reports how a
candidate answers: speed, confidence, silly mistakes and trends.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		c, err := config.Load(files...)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			if c.LogLevel, err = config.ParseLevel(lvl); err != nil {
				return err
			}
		}
		cfg = c
		slog.SetDefault(config.NewLogger(os.Stderr, c.LogFormat, c.LogLevel))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMLENS_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("env-file", "", "Load variables from this file instead of .env")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMLENS_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func newEngine(s *store.Store) *report.Engine {
	var opts []report.Option
	if cfg != nil {
		opts = append(opts, report.WithLocation(cfg.Location))
	}
	return report.New(s, append(opts, report.WithLogger(slog.Default()))...)
}
