package download

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/soundcloud-downloader/internal/audio"
	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/http"
	ioutils "github.com/handiism/soundcloud-downloader/internal/io"
	"github.com/handiism/soundcloud-downloader/internal/model"
	"github.com/handiism/soundcloud-downloader/internal/soundcloud"
	"github.com/handiism/soundcloud-downloader/internal/ytdlp"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns a short label for the level.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// MetadataExtractor produces track info for a page URL.
type MetadataExtractor interface {
	Extract(ctx context.Context, url string) (model.TrackInfo, error)
}

// AudioDownloader fetches the audio of a page URL and returns the file path.
type AudioDownloader interface {
	Download(ctx context.Context, url string, opts ytdlp.Options) (string, error)
}

// TagWriter writes track info into an audio file.
type TagWriter interface {
	SaveTags(path string, info model.TrackInfo, artwork []byte) error
}

// ArtworkFetcher downloads cover art.
type ArtworkFetcher interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Option customizes a Manager.
type Option func(*Manager)

// WithExtractor replaces the page metadata extractor.
func WithExtractor(e MetadataExtractor) Option {
	return func(m *Manager) { m.extractor = e }
}

// WithDownloader replaces the yt-dlp driver.
func WithDownloader(d AudioDownloader) Option {
	return func(m *Manager) { m.downloader = d }
}

// WithTagger replaces the ID3 tag writer.
func WithTagger(t TagWriter) Option {
	return func(m *Manager) { m.tagger = t }
}

// WithArtworkFetcher replaces the client used to fetch cover art.
func WithArtworkFetcher(f ArtworkFetcher) Option {
	return func(m *Manager) { m.artwork = f }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager coordinates track downloads.
//
// Each URL is an independent unit: optional metadata extraction, the
// yt-dlp download, then optional tagging. At most settings.Parallel units
// run at once and a failing unit never affects the others.
type Manager struct {
	settings     *config.Settings
	extractor    MetadataExtractor
	downloader   AudioDownloader
	tagger       TagWriter
	artwork      ArtworkFetcher
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	logger       *slog.Logger

	totalTracks int32
	doneTracks  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// onProgress may be nil. It is called from multiple goroutines and must be
// safe for concurrent use.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	logger := slog.New(slog.DiscardHandler)

	clientOpts := []http.Option{http.WithTimeout(settings.Timeout())}
	if ua := strings.TrimSpace(settings.UserAgent); ua != "" {
		clientOpts = append(clientOpts, http.WithUserAgent(ua))
	}
	client := http.NewClient(clientOpts...)

	m := &Manager{
		settings:     settings,
		artwork:      client,
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		playlist:     audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		logger:       logger,
		onProgress:   onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.extractor == nil {
		m.extractor = soundcloud.NewExtractor(client, m.logger.With("component", "extractor"))
	}
	if m.downloader == nil {
		m.downloader = ytdlp.NewDownloader(settings.YtdlpBinary, m.logger.With("component", "ytdlp"))
	}
	return m
}

// Progress returns the number of finished units and the number of units
// in the current run.
func (m *Manager) Progress() (done, total int32) {
	return atomic.LoadInt32(&m.doneTracks), atomic.LoadInt32(&m.totalTracks)
}

// Run processes urls and returns one outcome per unique URL, in input
// order.
//
// Per-track failures are recorded in the outcomes. The returned error is
// non-nil only when the output directory cannot be created or ctx is
// cancelled; in the latter case the outcomes of units that never started
// carry the context error.
func (m *Manager) Run(ctx context.Context, urls []string) ([]model.Outcome, error) {
	urls = UniqueURLs(urls)
	atomic.StoreInt32(&m.totalTracks, int32(len(urls)))
	atomic.StoreInt32(&m.doneTracks, 0)

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return nil, err
	}

	if m.settings.WithMetadata {
		m.progress(ProgressEvent{Message: "Metadata extraction and tagging is enabled", Level: LevelInfo})
	}

	outcomes := make([]model.Outcome, len(urls))
	for i, url := range urls {
		outcomes[i] = model.Outcome{Index: i, URL: url}
	}

	var g errgroup.Group
	g.SetLimit(max(1, m.settings.Parallel))

	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = m.processTrack(ctx, i, url)
			atomic.AddInt32(&m.doneTracks, 1)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range outcomes {
			if !outcomes[i].Success() && outcomes[i].Err == nil {
				outcomes[i].Err = err
			}
		}
		return outcomes, err
	}

	if m.settings.CreatePlaylist {
		m.writePlaylist(ctx, outcomes)
	}

	return outcomes, nil
}

func (m *Manager) processTrack(ctx context.Context, index int, url string) model.Outcome {
	outcome := model.Outcome{Index: index, URL: url}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading from: %s", url), Level: LevelInfo})

	if m.settings.WithMetadata {
		info, err := m.extractor.Extract(ctx, url)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error extracting metadata from %s: %v", url, err), Level: LevelWarning})
		}
		if genre := strings.TrimSpace(m.settings.Genre); genre != "" {
			info.Genre = genre
		}
		outcome.Info = info
		m.progress(ProgressEvent{Message: fmt.Sprintf("Track info: %s", info), Level: LevelVerbose})
	}

	path, err := m.downloader.Download(ctx, url, m.ytdlpOptions())
	if err != nil {
		outcome.Err = err
		m.logger.Warn("download failed", "url", url, "error", err)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to download: %s", url), Level: LevelError})
		m.progress(ProgressEvent{Message: fmt.Sprintf("Reason: %v", err), Level: LevelVerbose})
		return outcome
	}
	outcome.Path = path

	if m.settings.WithMetadata && !outcome.Info.IsEmpty() {
		artwork := m.fetchArtwork(ctx, outcome.Info)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Updating metadata for: %s", filepath.Base(path)), Level: LevelVerbose})
		if err := m.tagger.SaveTags(path, outcome.Info, artwork); err != nil {
			m.logger.Warn("tagging failed", "path", path, "error", err)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err), Level: LevelWarning})
		} else {
			outcome.Tagged = true
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(path)), Level: LevelSuccess})
	return outcome
}

// fetchArtwork returns JPEG cover art ready for embedding, or nil when
// artwork is disabled, absent or cannot be fetched.
func (m *Manager) fetchArtwork(ctx context.Context, info model.TrackInfo) []byte {
	if !m.settings.EmbedArtwork || !info.HasArtwork() {
		return nil
	}

	data, err := m.artwork.DownloadBytes(ctx, info.ArtworkURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork: %v", err), Level: LevelWarning})
		return nil
	}

	prepared, err := m.imageService.PrepareArtwork(ctx, data, m.settings.ArtworkMaxSize)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing artwork: %v", err), Level: LevelWarning})
		return nil
	}
	return prepared
}

func (m *Manager) writePlaylist(ctx context.Context, outcomes []model.Outcome) {
	if len(model.Successful(outcomes)) == 0 {
		return
	}

	name := ioutils.SanitizeFileName(m.settings.PlaylistName)
	if name == "" {
		name = "soundcloud"
	}
	path := filepath.Join(m.settings.OutputDir, name+m.playlist.Format().Extension())

	content := m.playlist.CreatePlaylist(name, outcomes)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist: %s", filepath.Base(path)), Level: LevelSuccess})
}

func (m *Manager) ytdlpOptions() ytdlp.Options {
	return ytdlp.Options{
		OutputDir: m.settings.OutputDir,
		Format:    m.settings.Format,
		Quality:   m.settings.Quality,
		ExtraArgs: m.settings.YtdlpExtraArgs,
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// UniqueURLs trims urls, drops blanks and removes duplicates, keeping the
// first occurrence of each.
func UniqueURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}
	return unique
}

// ParseInput splits free-form input on whitespace and keeps the http(s)
// URLs.
func ParseInput(input string) []string {
	var urls []string
	for _, field := range strings.Fields(input) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			urls = append(urls, field)
		}
	}
	return urls
}
