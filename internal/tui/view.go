package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/soundcloud-downloader/internal/download"
)

const accent = lipgloss.Color("#FF5500")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	tallyStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

// logMarks maps each event level to the glyph and style of its log line.
var logMarks = map[download.ProgressLevel]struct {
	glyph string
	style lipgloss.Style
}{
	download.LevelInfo:    {"›", lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))},
	download.LevelVerbose: {"·", mutedStyle},
	download.LevelWarning: {"!", lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))},
	download.LevelError:   {"✗", failStyle},
	download.LevelSuccess: {"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))},
}

// View renders the UI.
func (m Model) View() string {
	var body string
	switch m.state {
	case StateInput:
		body = m.inputScreen()
	case StateDownloading:
		body = m.downloadScreen()
	case StateComplete:
		body = m.resultScreen()
	case StateError:
		body = m.errorScreen()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("SoundCloud Downloader")+" "+mutedStyle.Render("yt-dlp + ID3 tagging"),
		"",
		body,
		mutedStyle.Render(m.keyHints()),
	)
}

func (m Model) inputScreen() string {
	lines := []string{
		labelStyle.Render("Track URLs, separated by whitespace:"),
		m.textInput.View(),
	}
	if m.inputErr != "" {
		lines = append(lines, failStyle.Render(m.inputErr))
	}

	title := "Options"
	if m.focusOptions {
		title = "Options (tab to return to URLs)"
	}
	lines = append(lines, "", labelStyle.Render(title),
		option(m.metadata, "Extract metadata and tag files", 'm'),
		option(m.artwork, "Embed cover art", 'a'),
		option(m.playlist, "Create playlist", 'p'),
		option(m.verbose, "Verbose output", 'v'),
		"",
		mutedStyle.Render(fmt.Sprintf("%s · %s @ %s · %d parallel",
			m.settings.OutputDir, m.settings.Format, m.settings.Quality, m.settings.Parallel)),
		"",
	)
	return strings.Join(lines, "\n")
}

func (m Model) downloadScreen() string {
	lines := []string{
		m.spinner.View() + " " + labelStyle.Render("Downloading tracks"),
		"",
		m.progress.ViewAs(m.percent()),
		fmt.Sprintf("Tracks: %d/%d", m.doneTracks, m.totalTracks),
		"",
	}
	for _, ev := range m.logs {
		lines = append(lines, logLine(ev))
	}
	return strings.Join(append(lines, ""), "\n")
}

func (m Model) resultScreen() string {
	return strings.Join(append([]string{tallyStyle.Render(m.tally())}, m.failedLines()...), "\n") + "\n"
}

func (m Model) errorScreen() string {
	lines := []string{failStyle.Render("Error: " + fmt.Sprint(m.err)), ""}
	if m.summary.Total > 0 {
		lines = append(lines, m.tally())
		lines = append(lines, m.failedLines()...)
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) tally() string {
	return fmt.Sprintf("Successfully downloaded %d of %d tracks.", m.summary.Succeeded, m.summary.Total)
}

func (m Model) failedLines() []string {
	lines := make([]string, 0, len(m.failed))
	for _, url := range m.failed {
		lines = append(lines, failStyle.Render("✗ Failed to download: "+url))
	}
	return lines
}

func (m Model) keyHints() string {
	switch m.state {
	case StateInput:
		if m.focusOptions {
			return "m/a/p/v toggle · tab URLs · enter start · esc quit"
		}
		return "enter start · tab options · esc quit"
	case StateDownloading:
		return "esc cancel"
	case StateComplete, StateError:
		return "r new batch · q quit"
	}
	return ""
}

func logLine(ev LogEntry) string {
	mark, ok := logMarks[ev.Level]
	if !ok {
		mark = logMarks[download.LevelVerbose]
	}
	return mark.style.Render(mark.glyph + " " + ev.Message)
}

func option(on bool, label string, key rune) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	return fmt.Sprintf("  %s %s (%c)", box, label, key)
}
