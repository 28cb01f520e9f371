package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/download"
	"github.com/handiism/soundcloud-downloader/internal/model"
	"github.com/handiism/soundcloud-downloader/internal/ytdlp"
)

const progressPollInterval = 100 * time.Millisecond

func runDownload(cmd *cobra.Command, root *rootOptions, opts *downloadOptions, settings *config.Settings, args []string) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	logger, err := newLogger(settings, stderr)
	if err != nil {
		return err
	}

	for _, status := range ytdlp.Missing(ytdlp.CheckBinaries(ytdlp.DefaultRequirements(settings.YtdlpBinary))) {
		logger.Warn("dependency not found", "name", status.Name, "command", status.Command, "detail", status.Detail)
	}

	urls := download.UniqueURLs(args)
	showBar := !opts.noProgress && isTerminal(stderr)
	bar := newProgressBar(stderr, len(urls), showBar)
	printer := newEventPrinter(stdout, bar, showBar, root.verbose)

	manager := download.NewManager(settings, printer.print, download.WithLogger(logger))

	var wg sync.WaitGroup
	stopPolling := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(progressPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPolling:
				return
			case <-ticker.C:
				done, _ := manager.Progress()
				printer.setProgress(int(done))
			}
		}
	}()

	outcomes, runErr := manager.Run(ctx, urls)
	close(stopPolling)
	wg.Wait()

	done, _ := manager.Progress()
	printer.setProgress(int(done))
	printer.finish()

	if runErr != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stdout, "\nDownload cancelled.")
		}
		return runErr
	}

	summary := model.Summarize(outcomes)
	fmt.Fprintf(stdout, "\nSuccessfully downloaded %d of %d tracks.\n", summary.Succeeded, summary.Total)
	return nil
}

func newProgressBar(w io.Writer, total int, visible bool) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Downloading tracks"),
		progressbar.OptionSetItsString("track"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(progressPollInterval),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionClearOnFinish(),
	)
}
