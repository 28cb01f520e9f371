package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/model"
	"github.com/handiism/soundcloud-downloader/internal/ytdlp"
)

type fakeExtractor struct {
	infos map[string]model.TrackInfo
	errs  map[string]error
}

func (f *fakeExtractor) Extract(_ context.Context, url string) (model.TrackInfo, error) {
	if err := f.errs[url]; err != nil {
		return model.TrackInfo{Title: model.TitleExtractionError, Artist: model.ArtistExtractionError}, err
	}
	return f.infos[url], nil
}

// fakeDownloader writes an empty file named after the last path segment of
// the URL and records how many calls are in flight.
type fakeDownloader struct {
	delay    time.Duration
	fail     map[string]bool
	inFlight int32
	maxSeen  int32
	mu       sync.Mutex
	calls    []string
}

func (f *fakeDownloader) Download(ctx context.Context, url string, opts ytdlp.Options) (string, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if f.fail[url] {
		return "", &ytdlp.ExitError{Code: 1, Output: "ERROR: boom"}
	}

	name := url[strings.LastIndex(url, "/")+1:] + "." + opts.Format
	path := filepath.Join(opts.OutputDir, name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeTagger struct {
	mu     sync.Mutex
	tagged map[string]model.TrackInfo
	art    map[string][]byte
	err    error
}

func (f *fakeTagger) SaveTags(path string, info model.TrackInfo, artwork []byte) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tagged == nil {
		f.tagged = map[string]model.TrackInfo{}
		f.art = map[string][]byte{}
	}
	f.tagged[filepath.Base(path)] = info
	f.art[filepath.Base(path)] = artwork
	return nil
}

type fakeArtwork struct {
	data []byte
	err  error
}

func (f *fakeArtwork) DownloadBytes(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) messages(level ProgressLevel) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.OutputDir = filepath.Join(t.TempDir(), "out")
	return s
}

func TestManager_RunTagsDownloadedTracks(t *testing.T) {
	settings := testSettings(t)
	extractor := &fakeExtractor{infos: map[string]model.TrackInfo{
		"https://soundcloud.com/a/one": {Title: "One", Artist: "A", Genre: "House"},
		"https://soundcloud.com/b/two": {Title: "Two", Artist: "B"},
	}}
	downloader := &fakeDownloader{}
	tagger := &fakeTagger{}
	events := &eventRecorder{}

	m := NewManager(settings, events.record,
		WithExtractor(extractor), WithDownloader(downloader), WithTagger(tagger))

	outcomes, err := m.Run(context.Background(), []string{
		"https://soundcloud.com/a/one",
		"https://soundcloud.com/b/two",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if s := model.Summarize(outcomes); s.Succeeded != 2 || s.Failed != 0 {
		t.Fatalf("Summarize() = %+v, want 2 succeeded", s)
	}
	for _, o := range outcomes {
		if !o.Tagged {
			t.Errorf("outcome %s not tagged", o.URL)
		}
	}
	if got := tagger.tagged["one.mp3"]; got.Genre != "House" || got.Title != "One" {
		t.Errorf("tagged info = %+v", got)
	}

	if done, total := m.Progress(); done != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 2/2", done, total)
	}

	info := events.messages(LevelInfo)
	if len(info) == 0 || info[0] != "Metadata extraction and tagging is enabled" {
		t.Errorf("first info event = %v", info)
	}
}

func TestManager_FailureIsolationAndOrder(t *testing.T) {
	settings := testSettings(t)
	settings.Parallel = 3
	settings.WithMetadata = false

	urls := []string{
		"https://soundcloud.com/x/t0",
		"https://soundcloud.com/x/t1",
		"https://soundcloud.com/x/t2",
		"https://soundcloud.com/x/t3",
		"https://soundcloud.com/x/t4",
	}
	downloader := &fakeDownloader{
		delay: 5 * time.Millisecond,
		fail:  map[string]bool{urls[1]: true, urls[3]: true},
	}
	events := &eventRecorder{}
	m := NewManager(settings, events.record, WithDownloader(downloader), WithTagger(&fakeTagger{}))

	outcomes, err := m.Run(context.Background(), urls)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outcomes) != len(urls) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(urls))
	}

	for i, o := range outcomes {
		if o.Index != i || o.URL != urls[i] {
			t.Errorf("outcome %d = {Index:%d URL:%s}, want input order", i, o.Index, o.URL)
		}
		wantOK := i != 1 && i != 3
		if o.Success() != wantOK {
			t.Errorf("outcome %d success = %v, want %v (err %v)", i, o.Success(), wantOK, o.Err)
		}
		if o.Tagged {
			t.Errorf("outcome %d tagged with metadata disabled", i)
		}
	}

	var exitErr *ytdlp.ExitError
	if !errors.As(outcomes[1].Err, &exitErr) {
		t.Errorf("expected ExitError for failed unit, got %v", outcomes[1].Err)
	}

	failed := events.messages(LevelError)
	if len(failed) != 2 {
		t.Fatalf("got %d error events, want 2: %v", len(failed), failed)
	}
	for _, msg := range failed {
		if !strings.HasPrefix(msg, "Failed to download: ") {
			t.Errorf("unexpected error event %q", msg)
		}
	}
	if len(events.messages(LevelInfo)) == 0 {
		t.Error("expected per-track info events")
	}
	for _, msg := range events.messages(LevelInfo) {
		if msg == "Metadata extraction and tagging is enabled" {
			t.Error("metadata notice printed with metadata disabled")
		}
	}
}

func TestManager_BoundedConcurrency(t *testing.T) {
	tests := []struct {
		name     string
		parallel int
		want     int32
	}{
		{name: "sequential", parallel: 1, want: 1},
		{name: "zero means sequential", parallel: 0, want: 1},
		{name: "bounded", parallel: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings(t)
			settings.Parallel = tt.parallel
			settings.WithMetadata = false

			var urls []string
			for _, c := range "abcdefghij" {
				urls = append(urls, "https://soundcloud.com/x/"+string(c))
			}
			downloader := &fakeDownloader{delay: 20 * time.Millisecond}
			m := NewManager(settings, nil, WithDownloader(downloader))

			if _, err := m.Run(context.Background(), urls); err != nil {
				t.Fatalf("Run returned error: %v", err)
			}

			got := atomic.LoadInt32(&downloader.maxSeen)
			if got > tt.want {
				t.Errorf("max in flight = %d, limit %d", got, tt.want)
			}
			if tt.want > 1 && got < 2 {
				t.Errorf("max in flight = %d, expected concurrent units", got)
			}
		})
	}
}

func TestManager_DuplicateURLs(t *testing.T) {
	settings := testSettings(t)
	settings.WithMetadata = false
	downloader := &fakeDownloader{}
	m := NewManager(settings, nil, WithDownloader(downloader))

	outcomes, err := m.Run(context.Background(), []string{
		"https://soundcloud.com/a/one",
		" https://soundcloud.com/a/one ",
		"",
		"https://soundcloud.com/a/two",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outcomes) != 2 || len(downloader.calls) != 2 {
		t.Errorf("got %d outcomes and %d downloads, want 2 each", len(outcomes), len(downloader.calls))
	}
}

func TestManager_MetadataErrorStillTags(t *testing.T) {
	settings := testSettings(t)
	url := "https://soundcloud.com/a/one"
	extractor := &fakeExtractor{errs: map[string]error{url: errors.New("HTTP 404: 404 Not Found")}}
	tagger := &fakeTagger{}
	events := &eventRecorder{}
	m := NewManager(settings, events.record,
		WithExtractor(extractor), WithDownloader(&fakeDownloader{}), WithTagger(tagger))

	outcomes, err := m.Run(context.Background(), []string{url})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !outcomes[0].Success() {
		t.Fatalf("metadata failure must not fail the unit: %v", outcomes[0].Err)
	}
	if got := tagger.tagged["one.mp3"].Title; got != model.TitleExtractionError {
		t.Errorf("tagged title = %q, want placeholder", got)
	}
	if len(events.messages(LevelWarning)) == 0 {
		t.Error("expected a warning event for the extraction error")
	}
}

func TestManager_TaggingFailureIsWarning(t *testing.T) {
	settings := testSettings(t)
	url := "https://soundcloud.com/a/one"
	extractor := &fakeExtractor{infos: map[string]model.TrackInfo{url: {Title: "One"}}}
	events := &eventRecorder{}
	m := NewManager(settings, events.record,
		WithExtractor(extractor), WithDownloader(&fakeDownloader{}), WithTagger(&fakeTagger{err: errors.New("read-only")}))

	outcomes, _ := m.Run(context.Background(), []string{url})
	if !outcomes[0].Success() || outcomes[0].Tagged {
		t.Errorf("outcome = %+v, want success without tags", outcomes[0])
	}
	if len(events.messages(LevelWarning)) != 1 {
		t.Errorf("warnings = %v, want one tagging warning", events.messages(LevelWarning))
	}
}

func TestManager_GenreOverrideAndArtwork(t *testing.T) {
	settings := testSettings(t)
	settings.Genre = "Ambient"
	settings.EmbedArtwork = true
	settings.ArtworkMaxSize = 0
	url := "https://soundcloud.com/a/one"
	extractor := &fakeExtractor{infos: map[string]model.TrackInfo{
		url: {Title: "One", Genre: "Techno", ArtworkURL: "https://i1.sndcdn.com/artworks-1-t500x500.jpg"},
	}}
	tagger := &fakeTagger{}
	events := &eventRecorder{}
	m := NewManager(settings, events.record,
		WithExtractor(extractor), WithDownloader(&fakeDownloader{}), WithTagger(tagger),
		WithArtworkFetcher(&fakeArtwork{data: []byte("not an image")}))

	if _, err := m.Run(context.Background(), []string{url}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := tagger.tagged["one.mp3"].Genre; got != "Ambient" {
		t.Errorf("genre = %q, want override", got)
	}
	if tagger.art["one.mp3"] != nil {
		t.Error("undecodable artwork should not be embedded")
	}
	if len(events.messages(LevelWarning)) != 1 {
		t.Errorf("warnings = %v, want one artwork warning", events.messages(LevelWarning))
	}
}

func TestManager_Playlist(t *testing.T) {
	settings := testSettings(t)
	settings.WithMetadata = false
	settings.CreatePlaylist = true
	settings.PlaylistFormat = "m3u"
	settings.PlaylistName = "My: Mix"

	urls := []string{"https://soundcloud.com/a/one", "https://soundcloud.com/a/bad", "https://soundcloud.com/a/two"}
	downloader := &fakeDownloader{fail: map[string]bool{urls[1]: true}}
	m := NewManager(settings, nil, WithDownloader(downloader))

	if _, err := m.Run(context.Background(), urls); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(settings.OutputDir, "My_ Mix.m3u"))
	if err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "one.mp3") || !strings.Contains(content, "two.mp3") {
		t.Errorf("playlist missing tracks: %q", content)
	}
	if strings.Contains(content, "bad") {
		t.Errorf("playlist contains failed track: %q", content)
	}
}

func TestManager_Cancelled(t *testing.T) {
	settings := testSettings(t)
	settings.WithMetadata = false
	settings.Parallel = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(settings, nil, WithDownloader(&fakeDownloader{}))
	outcomes, err := m.Run(ctx, []string{"https://soundcloud.com/a/one", "https://soundcloud.com/a/two"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for _, o := range outcomes {
		if o.Success() || !errors.Is(o.Err, context.Canceled) {
			t.Errorf("outcome %+v should carry the cancellation", o)
		}
	}
}

func TestUniqueURLs(t *testing.T) {
	got := UniqueURLs([]string{"b", " a", "b", "", "a ", "c"})
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueURLs() = %v, want %v", got, want)
	}
}

func TestParseInput(t *testing.T) {
	input := "https://soundcloud.com/a/one\n  not-a-url https://soundcloud.com/b/two\thttp://x/y\n"
	got := ParseInput(input)
	want := []string{"https://soundcloud.com/a/one", "https://soundcloud.com/b/two", "http://x/y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseInput() = %v, want %v", got, want)
	}
}

func TestProgressLevel_String(t *testing.T) {
	if LevelSuccess.String() != "success" || LevelInfo.String() != "info" {
		t.Error("unexpected level labels")
	}
}
