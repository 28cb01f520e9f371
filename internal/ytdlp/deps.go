package ytdlp

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the downloader relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// DefaultRequirements lists yt-dlp (under the configured command name) and
// ffmpeg, which yt-dlp needs to extract and transcode audio.
func DefaultRequirements(binary string) []Requirement {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     binary,
			Description: "Fetches track audio",
		},
		{
			Name:        "FFmpeg",
			Command:     "ffmpeg",
			Description: "Extracts and transcodes audio for yt-dlp",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if _, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the required (non-optional) statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
