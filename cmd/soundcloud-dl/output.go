package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/handiism/soundcloud-downloader/internal/download"
)

// eventPrinter writes progress events above the progress bar.
type eventPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	showBar bool
	verbose bool

	info    *color.Color
	warn    *color.Color
	fail    *color.Color
	success *color.Color
	faint   *color.Color
}

func newEventPrinter(out io.Writer, bar *progressbar.ProgressBar, showBar, verbose bool) *eventPrinter {
	p := &eventPrinter{
		out:     out,
		bar:     bar,
		showBar: showBar,
		verbose: verbose,
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		faint:   color.New(color.FgHiBlack),
	}

	colorize := shouldColorize(out)
	for _, c := range []*color.Color{p.info, p.warn, p.fail, p.success, p.faint} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *eventPrinter) print(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !p.verbose {
		return
	}

	var prefix string
	switch event.Level {
	case download.LevelError:
		prefix = p.fail.Sprint("[ERR] ")
	case download.LevelWarning:
		prefix = p.warn.Sprint("[WRN] ")
	case download.LevelSuccess:
		prefix = p.success.Sprint("[OK]  ")
	case download.LevelInfo:
		prefix = p.info.Sprint("[INF] ")
	default:
		prefix = p.faint.Sprint("      ")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showBar {
		_ = p.bar.Clear()
	}
	fmt.Fprintln(p.out, prefix+event.Message)
	if p.showBar {
		_ = p.bar.RenderBlank()
	}
}

func (p *eventPrinter) setProgress(done int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Set(done)
}

func (p *eventPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldColorize(w io.Writer) bool {
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}
