package ytdlp

import (
	"errors"
	"fmt"
)

var (
	// ErrBinaryNotFound is returned when the yt-dlp binary cannot be started.
	ErrBinaryNotFound = errors.New("yt-dlp binary not found")

	// ErrOutputNotFound is returned when yt-dlp exited cleanly but no
	// existing output file could be recovered from its output.
	ErrOutputNotFound = errors.New("output file not found")
)

// ExitError reports a non-zero exit of the yt-dlp process.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("yt-dlp exited with status %d", e.Code)
}
