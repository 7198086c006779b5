// Package cmd implements the taskboard command line interface. The commands
// are a thin shell over the task service; all validation and storage rules
// live below it.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/taskboard/internal/config"
	"github.com/zjrosen/taskboard/internal/infrastructure/sqlite"
	"github.com/zjrosen/taskboard/internal/infrastructure/watcher"
	"github.com/zjrosen/taskboard/internal/log"
	"github.com/zjrosen/taskboard/internal/tasks/application"
	"github.com/zjrosen/taskboard/internal/tasks/domain"
	"github.com/zjrosen/taskboard/internal/tasks/repository"
	"github.com/zjrosen/taskboard/internal/telemetry"
)

var (
	cfg     config.Config
	svc     *application.TaskService
	cleanup []func()

	configPath string
	dbPath     string
	inMemory   bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Track tasks through a todo / doing / done board",
	Long: `taskboard is a minimal kanban-style task tracker. Tasks move forward
through a fixed lifecycle (todo -> doing -> done) and never backward.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init must run before the service stack exists.
		if cmd.Name() == "init" {
			return nil
		}
		return setup(cmd)
	},
}

// Execute runs the CLI and releases resources afterwards.
func Execute() {
	err := rootCmd.Execute()
	for i := len(cleanup) - 1; i >= 0; i-- {
		cleanup[i]()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "memory", false, "keep tasks in memory, skip the database")
}

// setup loads config and assembles the repository stack:
// sqlite (or memory) -> cache -> service, plus watcher and tracing.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if err := log.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		return err
	}
	cleanup = append(cleanup, func() { _ = log.Close() })

	if cfg.Trace {
		shutdown, err := telemetry.Setup(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		cleanup = append(cleanup, func() { _ = shutdown(cmd.Context()) })
	}

	var repo domain.TaskRepository
	if inMemory || cfg.Database.Path == "" {
		repo = repository.NewMemoryTaskRepository()
		log.Debug(log.CatCLI, "Using in-memory repository")
	} else {
		db, err := sqlite.NewDB(cfg.Database.Path, sqlite.Options{Backup: cfg.Database.Backup})
		if err != nil {
			return err
		}
		cleanup = append(cleanup, func() { _ = db.Close() })

		cached := repository.NewCachedTaskRepository(db.TaskRepository(), cfg.CacheTTL)
		if cfg.AutoRefresh {
			w, err := watcher.New(db.Path(), cfg.AutoRefreshDebounce, cached.Invalidate)
			if err != nil {
				log.ErrorErr(log.CatWatch, "Auto-refresh disabled", err)
			} else {
				cleanup = append(cleanup, func() { _ = w.Close() })
			}
		}
		repo = cached
	}

	svc = application.NewTaskService(repo)
	return nil
}
