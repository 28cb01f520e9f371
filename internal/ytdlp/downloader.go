package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the command name looked up on PATH.
const DefaultBinary = "yt-dlp"

// outputTemplate names files after the track title.
const outputTemplate = "%(title)s.%(ext)s"

// Options configures a single download.
type Options struct {
	// OutputDir is the directory the audio file is written to.
	OutputDir string

	// Format is the target audio format passed to --audio-format (e.g. "mp3").
	Format string

	// Quality is passed to --audio-quality (e.g. "320k" or "0").
	Quality string

	// ExtraArgs are appended before the URL.
	ExtraArgs []string
}

// BuildArgs returns the yt-dlp argument list for url.
func BuildArgs(opts Options, url string) []string {
	args := []string{
		"--extract-audio",
		"--audio-format", opts.Format,
		"--audio-quality", opts.Quality,
		"--output", filepath.Join(opts.OutputDir, outputTemplate),
		"--progress",
		"--print", "after_move:filepath",
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, url)
}

// outputExtensions maps --audio-format values to the extension yt-dlp
// gives the converted file. Formats not listed keep their own name.
var outputExtensions = map[string]string{
	"aac":    "m4a",
	"alac":   "m4a",
	"vorbis": "ogg",
}

// bestExtensions are the containers accepted when the format is "best" and
// yt-dlp keeps the source codec.
var bestExtensions = map[string]bool{
	".aac": true, ".flac": true, ".m4a": true, ".mp3": true,
	".ogg": true, ".opus": true, ".wav": true, ".webm": true,
}

// OutputExtension returns the file extension, without the dot, that yt-dlp
// writes for format. It is empty for "best".
func OutputExtension(format string) string {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if format == "best" {
		return ""
	}
	if ext, ok := outputExtensions[format]; ok {
		return ext
	}
	return format
}

// FindOutputPath returns the first line of output that names the converted
// file, trimmed of surrounding whitespace.
//
// Lines are split on both newlines and carriage returns, so progress output
// of any length is tolerated. yt-dlp's own log lines ("[download] ...",
// "[ExtractAudio] Destination: ...") are skipped, leaving the bare path
// printed by --print after_move:filepath.
func FindOutputPath(output, format string) (string, bool) {
	ext := OutputExtension(format)
	lines := strings.FieldsFunc(output, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		if ext == "" {
			if bestExtensions[strings.ToLower(filepath.Ext(line))] {
				return line, true
			}
			continue
		}
		if strings.HasSuffix(strings.ToLower(line), "."+ext) {
			return line, true
		}
	}
	return "", false
}

// Downloader runs yt-dlp subprocesses.
//
// A Downloader holds no per-call state and is safe for concurrent use.
type Downloader struct {
	binary string
	logger *slog.Logger
}

// NewDownloader creates a Downloader for the given binary.
//
// An empty binary means DefaultBinary; a nil logger discards output.
func NewDownloader(binary string, logger *slog.Logger) *Downloader {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Downloader{binary: binary, logger: logger}
}

// Binary returns the command this Downloader runs.
func (d *Downloader) Binary() string {
	return d.binary
}

// Download fetches url as audio into opts.OutputDir and returns the path of
// the produced file.
//
// Combined stdout and stderr go to a capture file created in the output
// directory and removed before returning. Cancelling ctx kills the
// subprocess.
func (d *Downloader) Download(ctx context.Context, url string, opts Options) (string, error) {
	capture, err := os.CreateTemp(opts.OutputDir, ".ytdlp-*.log")
	if err != nil {
		return "", fmt.Errorf("create capture file: %w", err)
	}
	defer func() {
		capture.Close()
		os.Remove(capture.Name())
	}()

	args := BuildArgs(opts, url)
	d.logger.Debug("running yt-dlp", "binary", d.binary, "args", args)

	cmd := exec.CommandContext(ctx, d.binary, args...)
	cmd.Stdout = capture
	cmd.Stderr = capture

	runErr := cmd.Run()

	output, readErr := os.ReadFile(capture.Name())
	if readErr != nil {
		return "", fmt.Errorf("read capture file: %w", readErr)
	}

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return "", &ExitError{Code: exitErr.ExitCode(), Output: string(output)}
		}
		if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, d.binary)
		}
		return "", fmt.Errorf("run %s: %w", d.binary, runErr)
	}

	path, ok := FindOutputPath(string(output), opts.Format)
	if !ok {
		return "", fmt.Errorf("%w: no %s output line in yt-dlp output", ErrOutputNotFound, opts.Format)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutputNotFound, path)
	}

	d.logger.Debug("yt-dlp finished", "url", url, "path", path)
	return path, nil
}
