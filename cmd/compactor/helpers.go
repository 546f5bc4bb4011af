package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"compactor/internal/compact"
	"compactor/internal/config"
	"compactor/internal/service"
	"compactor/internal/store"
)

// configTarget resolves the config path and whether the operator asked for
// it explicitly. Absence of the file is only fatal in the explicit case.
func configTarget() (path string, explicit bool) {
	if configPath != "" {
		return configPath, true
	}
	return config.DefaultPath(), false
}

func loadConfig() (*config.Config, error) {
	path, explicit := configTarget()
	return config.Load(path, explicit)
}

// openInventory builds the bridge client and probes it for the full
// capability set. A handle without a live link yields ErrDisconnected;
// callers report that and exit cleanly without attempting work.
func openInventory(ctx context.Context, cfg *config.Config) (service.Inventory, *service.Bridge, error) {
	base := bridgeURL
	if base == "" {
		base = cfg.Service.BaseURL
	}

	bridge := service.NewBridge(base, cfg.Service.TimeoutDuration())
	inv, err := service.Select(bridge)
	if err != nil {
		bridge.Close()
		return nil, nil, err
	}
	if !inv.Connected(ctx) {
		bridge.Close()
		return nil, nil, service.ErrDisconnected
	}
	return inv, bridge, nil
}

// confirm prints the scheduling prompt and reads a yes/no answer.
// Anything other than an explicit yes declines.
func confirm(r io.Reader, w io.Writer) bool {
	fmt.Fprint(w, "Schedule these tasks? [y/N]: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return isYes(line)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func printPlan(tasks []compact.Task) {
	total := 0
	fmt.Println("Planned compaction tasks:")
	for _, t := range tasks {
		fmt.Printf("  %4dx %-32s (+%d slots)\n", t.Quantity, t.Info.Label, t.SlotsSaved)
		total += t.SlotsSaved
	}
	fmt.Printf("Total storage slots reclaimed: %d\n", total)
}

// recordRun appends the run to the history database. History is
// best-effort bookkeeping: failures are logged, never returned.
func recordRun(cfg *config.Config, id string, started time.Time, tasks []compact.Task, saved int) {
	h, err := store.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("History unavailable", zap.Error(err))
		return
	}
	defer h.Close()

	if err := h.Record(id, started, tasks, saved); err != nil {
		logger.Warn("Failed to record run history", zap.Error(err))
		return
	}
	if err := h.Prune(cfg.History.Keep); err != nil {
		logger.Warn("Failed to prune run history", zap.Error(err))
	}
}
