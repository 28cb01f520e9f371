package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/logging"
	"github.com/handiism/soundcloud-downloader/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	var logFile string

	cmd := &cobra.Command{
		Use:           "soundcloud-tui",
		Short:         "Interactive SoundCloud downloader",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			settings, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			// The TUI owns the terminal, so diagnostics go to a file or nowhere.
			logger := logging.Discard()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logger, err = logging.New(logging.Options{Level: settings.LogLevel, Format: settings.LogFormat, Output: f})
				if err != nil {
					return err
				}
			}

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (TOML)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file")
	return cmd
}
