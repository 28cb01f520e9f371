package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/ytdlp"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that yt-dlp and ffmpeg are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(root)
			if err != nil {
				return err
			}
			settings, err := config.Load(path)
			if err != nil {
				return err
			}

			statuses := ytdlp.CheckBinaries(ytdlp.DefaultRequirements(settings.YtdlpBinary))
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				if !s.Available {
					state = "missing"
					if s.Optional {
						state = "missing (optional)"
					}
				}
				rows = append(rows, []string{s.Name, s.Command, state, s.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Status", "Detail"}, rows, nil))

			if missing := ytdlp.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependencies missing", len(missing))
			}
			fmt.Fprintln(out, "All dependencies available")
			return nil
		},
	}
}
