package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/logging"
)

var (
	// Global flags
	verbose   bool
	sourceURL string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dexview",
	Short: "Browse a creature catalog served by a record source",
	Long: `dexview fetches creature records from a record source API and serves a
catalog viewer: a searchable sidebar and a detail pane for the selected entry.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if sourceURL != "" {
			cfg.SourceURL = sourceURL
		}
		logger, err = logging.New(verbose || cfg.Debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source", "", "Record source base URL (overrides RECORD_SOURCE_URL)")

	rootCmd.AddCommand(serveCmd, dumpCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
