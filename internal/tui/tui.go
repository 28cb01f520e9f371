// Package tui provides a Bubble Tea terminal user interface for soundcloud-dl.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/download"
	"github.com/handiism/soundcloud-downloader/internal/model"
)

// maxLogs is the number of progress events kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logger    *slog.Logger
	logs      []LogEntry
	inputErr  string
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	// Download progress
	doneTracks  int32
	totalTracks int32
	summary     model.Summary
	failed      []string

	// Options, toggled while focusOptions is set
	focusOptions bool
	metadata     bool
	artwork      bool
	playlist     bool
	verbose      bool

	width  int
	height int
}

// NewModel creates a new TUI model. The option toggles start from settings.
func NewModel(settings *config.Settings, logger *slog.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "https://soundcloud.com/artist/track ..."
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5500"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logger:    logger,
		logs:      make([]LogEntry, 0, maxLogs),
		ctx:       ctx,
		cancel:    cancel,
		metadata:  settings.WithMetadata,
		artwork:   settings.EmbedArtwork,
		playlist:  settings.CreatePlaylist,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event emitted by the download manager.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// eventsClosedMsg is sent once the event channel of a run is drained.
	eventsClosedMsg struct{}

	// DoneMsg is sent when the run finishes.
	DoneMsg struct {
		Outcomes []model.Outcome
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.appendLog(msg.Event)
		cmds = append(cmds, waitForEvent(m.events))

	case eventsClosedMsg:
		return m, nil

	case DoneMsg:
		m.summary = model.Summarize(msg.Outcomes)
		m.failed = m.failed[:0]
		for _, o := range msg.Outcomes {
			if !o.Success() {
				m.failed = append(m.failed, o.URL)
			}
		}
		if m.manager != nil {
			m.doneTracks, m.totalTracks = m.manager.Progress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.doneTracks, m.totalTracks = m.manager.Progress()
			cmds = append(cmds, tickProgress())
		}
	}

	// Update text input
	if m.state == StateInput && !m.focusOptions {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses. It reports whether the key was consumed.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return true, tea.Quit

	case "esc":
		switch m.state {
		case StateInput:
			m.cancel()
			return true, tea.Quit
		case StateDownloading:
			m.cancel()
		}
		return true, nil

	case "tab":
		if m.state == StateInput {
			m.focusOptions = !m.focusOptions
			if m.focusOptions {
				m.textInput.Blur()
			} else {
				m.textInput.Focus()
			}
		}
		return true, nil

	case "enter":
		if m.state == StateInput {
			return true, m.start()
		}
		return true, nil
	}

	if m.state == StateInput && m.focusOptions {
		switch msg.String() {
		case "m":
			m.metadata = !m.metadata
		case "a":
			m.artwork = !m.artwork
		case "p":
			m.playlist = !m.playlist
		case "v":
			m.verbose = !m.verbose
		}
		return true, nil
	}

	if m.state == StateComplete || m.state == StateError {
		switch msg.String() {
		case "q":
			return true, tea.Quit
		case "r":
			m.reset()
			return true, nil
		}
	}
	return false, nil
}

// start validates the input and launches a run.
func (m *Model) start() tea.Cmd {
	urls := download.UniqueURLs(download.ParseInput(m.textInput.Value()))
	if len(urls) == 0 {
		m.inputErr = "Enter at least one http(s) URL"
		return nil
	}
	m.inputErr = ""

	settings := *m.settings
	settings.WithMetadata = m.metadata
	settings.EmbedArtwork = m.artwork
	settings.CreatePlaylist = m.playlist

	ctx := m.ctx
	events := make(chan download.ProgressEvent, 64)
	send := func(event download.ProgressEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	}

	m.events = events
	m.manager = download.NewManager(&settings, send, download.WithLogger(m.logger))
	m.totalTracks = int32(len(urls))
	m.doneTracks = 0
	m.state = StateDownloading
	m.textInput.Blur()

	return tea.Batch(
		runDownload(ctx, m.manager, urls, events),
		waitForEvent(events),
		tickProgress(),
		m.spinner.Tick,
	)
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = m.logs[:0]
	m.err = nil
	m.inputErr = ""
	m.manager = nil
	m.events = nil
	m.doneTracks = 0
	m.totalTracks = 0
	m.summary = model.Summary{}
	m.failed = nil
	m.focusOptions = false
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) appendLog(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m Model) percent() float64 {
	if m.totalTracks == 0 {
		return 0
	}
	return float64(m.doneTracks) / float64(m.totalTracks)
}

// runDownload runs the manager and closes events once no more can be sent.
func runDownload(ctx context.Context, manager *download.Manager, urls []string, events chan download.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		outcomes, err := manager.Run(ctx, urls)
		close(events)
		return DoneMsg{Outcomes: outcomes, Err: err}
	}
}

// waitForEvent reads the next progress event from events.
func waitForEvent(events <-chan download.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ProgressMsg{Event: event}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
