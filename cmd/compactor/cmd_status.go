package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compactor/internal/compact"
	"compactor/internal/service"
)

// statusCmd shows bridge connectivity and a catalog summary
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bridge connectivity and catalog summary",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	base := bridgeURL
	if base == "" {
		base = cfg.Service.BaseURL
	}
	fmt.Printf("Bridge:              %s\n", base)

	bridge := service.NewBridge(base, cfg.Service.TimeoutDuration())
	defer bridge.Close()

	inv, err := service.Select(bridge)
	if err != nil {
		return err
	}
	if !inv.Connected(ctx) {
		fmt.Println("Status:              disconnected")
		return nil
	}
	fmt.Println("Status:              connected")

	patterns, err := compact.ListCandidates(ctx, inv, cfg.WhitelistInfos())
	if err != nil {
		return err
	}
	fmt.Printf("Whitelist entries:   %d\n", len(cfg.Whitelist))
	fmt.Printf("Compaction patterns: %d\n", len(patterns))
	return nil
}
