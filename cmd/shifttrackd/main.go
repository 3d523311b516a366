package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"shifttrack/internal/config"
	"shifttrack/internal/deps"
	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/server"
	"shifttrack/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "shifttrackd.lock")
	lock := flock.New(lockPath)
	held, err := lock.TryLock()
	if err != nil {
		logger.Error("acquire lock", logging.Error(err))
		os.Exit(1)
	}
	if !held {
		logger.Error("another shifttrackd instance holds the lock", logging.String("lock", lockPath))
		os.Exit(1)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	notifier := notifications.NewService(cfg)

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open shift store", logging.Error(err))
		notifyStartupFailure(notifier, logger, err, "shift store startup")
		os.Exit(1)
	}
	defer st.Close()

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     cfg.Paths.LogDir,
		Pattern: "*.log",
		Exclude: []string{"shifttrack.log"},
	})

	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		if !status.Available {
			logger.Warn("external dependency unavailable",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail),
			)
		}
	}

	srv, err := server.New(cfg, st, notifier, logger)
	if err != nil {
		logger.Error("create api server", logging.Error(err))
		notifyStartupFailure(notifier, logger, err, "api server startup")
		os.Exit(1)
	}
	if srv == nil {
		logger.Error("no api bind address configured")
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		logger.Error("start api server", logging.Error(err))
		notifyStartupFailure(notifier, logger, err, "api server startup")
		os.Exit(1)
	}
	defer srv.Stop()

	logger.Info("shifttrackd started",
		logging.String("lock", lockPath),
		logging.String("database", st.Path()),
	)

	<-ctx.Done()
	logger.Info("shifttrackd shutting down")
}

// notifyStartupFailure pushes a fatal startup error to the configured topic.
// The shutdown path that follows cannot wait on a slow push, so the call gets
// its own short deadline.
func notifyStartupFailure(notifier notifications.Service, logger *slog.Logger, cause error, label string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := notifier.NotifyError(ctx, cause, label); err != nil {
		logger.Warn("error notification failed", logging.Error(err))
	}
}
