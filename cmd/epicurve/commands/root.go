package commands

import (
	"context"

	"epicurve/internal/config"
	"epicurve/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	cfg      *config.AppConfig
	analysis *config.AnalysisConfig
)

var rootCmd = &cobra.Command{
	Use:   "epicurve",
	Short: "epicurve splits epidemic curves into waves and finds their peaks",
	Long: `Reads daily cumulative case counts per jurisdiction, derives daily values,
a 7-day average and a smoothed average, and partitions each curve into
rise/fall slices annotated with their peak day and magnitude.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		analysis, err = config.LoadAnalysis(cfg.ConfigFile)
		if err != nil {
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("config", cfg.ConfigFile).
			Int("workers", cfg.Workers).
			Msg("epicurve starting")
		return nil
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = Version

	rootCmd.AddCommand(newRunCmd(), newPeaksCmd(), newUpdateCmd(), newServeCmd())
}
