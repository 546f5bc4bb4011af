package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"compactor/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	bridgeURL  string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "compactor",
	Short: "compactor - automatic storage compaction for a remote crafting service",
	Long: `compactor inspects the recipe catalog of a remote crafting/inventory
service, finds compaction patterns (recipes that combine nine of one item
into a single output), plans how many of each the current stock affords,
and submits the work to the service's scheduler.

Planning is best effort: stock is not reserved between planning and
submission, so quantities are estimates against a snapshot.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config errors are not fatal here; commands reload and report
		// them properly. Defaults are enough to bring up logging.
		cfg, err := loadConfig()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		zcfg := zap.NewProductionConfig()
		if cfg.Logging.Format == "text" {
			zcfg = zap.NewDevelopmentConfig()
		}
		if level, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zcfg.Level = zap.NewAtomicLevelAt(level)
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.compactor/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&bridgeURL, "bridge", "", "Bridge base URL (overrides config)")

	// Add commands to root
	rootCmd.AddCommand(craftCmd)
	rootCmd.AddCommand(generateConfigCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
