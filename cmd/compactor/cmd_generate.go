package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactor/internal/compact"
	"compactor/internal/config"
	"compactor/internal/service"
)

// generateConfigCmd writes the compaction whitelist
var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate a whitelist of known compaction patterns",
	Long: `Scans the full recipe catalog, classifies compaction patterns, and
writes their identifiers to the config file as a whitelist. Later runs read
the whitelist instead of enumerating the whole catalog.

Other fields of an existing config file are preserved.`,
	RunE: runGenerateConfig,
}

func runGenerateConfig(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// The target file not existing yet is fine here even for an explicit
	// path: generate-config is how it comes into existence.
	path, _ := configTarget()
	cfg, err := config.Load(path, false)
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

	// Always a full scan: the point is rediscovering the complete set.
	patterns, err := compact.ListCandidates(ctx, inv, nil)
	if err != nil {
		return err
	}

	cfg.SetWhitelist(compact.GenerateWhitelist(patterns))
	if err := cfg.Save(path); err != nil {
		return err
	}

	logger.Info("Whitelist generated",
		zap.String("path", path),
		zap.Int("patterns", len(cfg.Whitelist)))
	fmt.Printf("Wrote %d compaction pattern(s) to %s\n", len(cfg.Whitelist), path)
	return nil
}
