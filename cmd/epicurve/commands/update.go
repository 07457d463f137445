package commands

import (
	"os"

	"epicurve/internal/ingest"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [folder]",
		Short: "Download the datasets of one or all configured folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			folders, err := analysis.Select(name)
			if err != nil {
				return err
			}

			client := ingest.NewHTTPClient()
			for _, f := range folders {
				if f.URL == "" {
					log.Warn().Str("folder", f.Name).Msg("No download URL configured")
					continue
				}
				path := cfg.DatasetPath(f.Dataset)
				if err := ingest.Download(cmd.Context(), client, f.URL, path); err != nil {
					return err
				}

				event := log.Info().Str("folder", f.Name).Str("path", path)
				if info, err := os.Stat(path); err == nil {
					event = event.Str("size", humanize.Bytes(uint64(info.Size())))
				}
				event.Msg("Dataset updated")
			}
			return nil
		},
	}
}
