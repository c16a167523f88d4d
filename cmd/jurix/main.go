// jurix is the courtroom-simulation CLI: it runs the multi-agent simulation
// protocol against stored cases, persists the validated results, and replays
// them turn by turn.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jurix/internal/config"
	"jurix/internal/logging"
)

var (
	// Global flags
	configPath string
	dataDir    string
	verbose    bool

	// Logger
	logger *zap.Logger

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jurix",
	Short: "jurix - courtroom simulation engine",
	Long: `jurix drives an AI courtroom simulation over stored legal cases.

Three role agents (prosecutor, defense, judge) argue the case through a
fixed session protocol. Every response degrades gracefully through a
provider chain (remote model, local model, deterministic script), so a
simulation always completes. Results are validated, persisted, and can be
replayed turn by turn.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; explicit environment always wins.
		_ = godotenv.Load()

		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if dataDir != "" {
			cfg.Store.Dir = dataDir
		}

		if err := logging.Initialize(cfg.Store.Dir); err != nil {
			logger.Warn("category logging unavailable", zap.Error(err))
		}
		if verbose {
			logging.SetDebug(true)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	base := dataDir
	if base == "" {
		base = "data"
	}
	return filepath.Join(base, "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for cases, evidence, and simulations")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
