package commands

import (
	"epicurve/internal/ingest"
	"epicurve/internal/report"

	"github.com/spf13/cobra"
)

func newPeaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peaks <folder> <key>",
		Short: "Print the slices and peaks saved by the last run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := report.NewStore(cfg.FolderDir(args[0]))
			rec, err := store.Load(ingest.Key(args[1]))
			if err != nil {
				return err
			}
			return report.PrintSlices(cmd.OutOrStdout(), *rec)
		},
	}
}
