package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactor/internal/compact"
	"compactor/internal/service"
)

var (
	assumeYes bool
	dryRun    bool
)

// craftCmd runs the auto-craft path once
var craftCmd = &cobra.Command{
	Use:   "craft",
	Short: "Plan and schedule compaction crafts",
	Long: `Scans the recipe catalog (or the configured whitelist) for compaction
patterns, plans how many of each the current stock affords, and submits the
resulting tasks to the service scheduler.

Prints the plan and asks for confirmation before scheduling; pass --yes to
skip the prompt, or --dry-run to stop after planning.`,
	RunE: runCraft,
}

func init() {
	craftCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Schedule without asking for confirmation")
	craftCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan only; do not schedule anything")
}

func runCraft(cmd *cobra.Command, args []string) error {
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

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, bridge, err := openInventory(ctx, cfg)
	if errors.Is(err, service.ErrDisconnected) {
		fmt.Println("Crafting service is not connected; nothing to do.")
		return nil
	}
	if err != nil {
		return err
	}
	defer bridge.Close()

	whitelist := cfg.WhitelistInfos()
	logger.Debug("Scanning catalog", zap.Int("whitelist", len(whitelist)))
	patterns, err := compact.ListCandidates(ctx, inv, whitelist)
	if err != nil {
		return err
	}
	logger.Info("Catalog scanned", zap.Int("compaction_patterns", len(patterns)))

	tasks, err := compact.Plan(ctx, inv, patterns)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("Nothing to compact.")
		return nil
	}

	printPlan(tasks)
	if dryRun {
		return nil
	}
	if !assumeYes && !confirm(os.Stdin, os.Stdout) {
		fmt.Println("Aborted; nothing scheduled.")
		return nil
	}

	runID := uuid.NewString()
	started := time.Now()
	logger.Info("Submitting tasks",
		zap.String("run_id", runID),
		zap.Int("tasks", len(tasks)))

	saved, err := compact.Execute(ctx, inv, tasks)
	if err != nil {
		logger.Error("Task submission failed",
			zap.String("run_id", runID),
			zap.Int("slots_saved", saved),
			zap.Error(err))
		return err
	}

	recordRun(cfg, runID, started, tasks, saved)
	fmt.Printf("Scheduled %d task(s); %d storage slots reclaimed.\n", len(tasks), saved)
	return nil
}
