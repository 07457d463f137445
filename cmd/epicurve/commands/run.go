package commands

import (
	"epicurve/internal/runner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var opts runner.Options

	cmd := &cobra.Command{
		Use:   "run [folder]",
		Short: "Analyze one or all configured folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Folder = args[0]
			}
			results, err := runner.Run(cmd.Context(), cfg, analysis, opts)
			if err != nil {
				return err
			}
			for _, r := range results {
				log.Info().Str("folder", r.Folder).Str("index", r.IndexPath).Msg("Done")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.Only, "only", nil, "restrict the run to these jurisdiction keys")
	cmd.Flags().BoolVar(&opts.Parquet, "parquet", false, "also export the derived series as series.parquet")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "open the generated index page in the browser")
	return cmd
}
