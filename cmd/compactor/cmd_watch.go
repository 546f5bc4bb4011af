package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactor/internal/compact"
	"compactor/internal/config"
	"compactor/internal/service"
)

var watchInterval time.Duration

// watchCmd runs the craft pipeline on a timer
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the craft pipeline periodically",
	Long: `Runs the non-interactive craft pipeline on a fixed interval. The config
file is watched for changes, so an updated whitelist applies to the next
run without a restart.

Runs are serialized on a single loop: a long run delays the next tick
rather than overlapping it.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 5*time.Minute, "Time between craft runs")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	path, _ := configTarget()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and Save replace the
	// file, which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Config watch unavailable", zap.String("path", path), zap.Error(err))
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	logger.Info("Watching",
		zap.Duration("interval", watchInterval),
		zap.String("config", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-watcher.Events:
			if isConfigRewrite(ev, path) {
				cfg = reloadConfig(path, cfg)
			}
		case werr := <-watcher.Errors:
			logger.Warn("Config watcher error", zap.Error(werr))
		case <-ticker.C:
			if err := watchRun(ctx, cfg); err != nil {
				logger.Error("Craft run failed", zap.Error(err))
			}
		}
	}
}

// isConfigRewrite reports whether the watcher event is a write or create
// of the watched config file.
func isConfigRewrite(ev fsnotify.Event, path string) bool {
	return filepath.Clean(ev.Name) == filepath.Clean(path) &&
		ev.Op.Has(fsnotify.Write|fsnotify.Create)
}

// reloadConfig re-reads the config after a rewrite. A file that no longer
// loads keeps the previous config in effect.
func reloadConfig(path string, current *config.Config) *config.Config {
	fresh, err := config.Load(path, false)
	if err != nil {
		logger.Warn("Config reload failed; keeping previous", zap.Error(err))
		return current
	}
	logger.Info("Config reloaded", zap.Int("whitelist", len(fresh.Whitelist)))
	return fresh
}

// watchRun is one non-interactive pass of the craft pipeline. Errors go to
// the log and the loop keeps watching.
func watchRun(ctx context.Context, cfg *config.Config) error {
	inv, bridge, err := openInventory(ctx, cfg)
	if errors.Is(err, service.ErrDisconnected) {
		logger.Warn("Crafting service not connected; skipping run")
		return nil
	}
	if err != nil {
		return err
	}
	defer bridge.Close()

	return craftOnce(ctx, cfg, inv)
}

// craftOnce runs catalog scan, planning, submission, and history recording
// against an already-selected inventory handle.
func craftOnce(ctx context.Context, cfg *config.Config, inv service.Inventory) error {
	patterns, err := compact.ListCandidates(ctx, inv, cfg.WhitelistInfos())
	if err != nil {
		return err
	}
	tasks, err := compact.Plan(ctx, inv, patterns)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		logger.Debug("Nothing to compact")
		return nil
	}

	runID := uuid.NewString()
	started := time.Now()
	saved, err := compact.Execute(ctx, inv, tasks)
	if err != nil {
		logger.Error("Task submission failed",
			zap.String("run_id", runID),
			zap.Int("slots_saved", saved),
			zap.Error(err))
		return err
	}

	recordRun(cfg, runID, started, tasks, saved)
	logger.Info("Craft run complete",
		zap.String("run_id", runID),
		zap.Int("tasks", len(tasks)),
		zap.Int("slots_saved", saved))
	return nil
}
