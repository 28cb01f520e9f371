package soundcloud

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anaskhan96/soup"

	"github.com/handiism/soundcloud-downloader/internal/model"
)

var (
	// "Track Name by Artist Name | Listen online for free on SoundCloud"
	titleTagPattern = regexp.MustCompile(`(.+) by (.+) \| Listen`)

	profileURLPattern = regexp.MustCompile(`soundcloud\.com/([^/]+)`)
)

// PageFetcher fetches the HTML of a page.
//
// *http.Client from internal/http satisfies this interface.
type PageFetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Extractor fetches track pages and extracts their metadata.
type Extractor struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewExtractor creates an Extractor. A nil logger discards log output.
func NewExtractor(fetcher PageFetcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Extract fetches url and extracts its title, artist and genre.
//
// When the page cannot be fetched, the returned info carries the
// "Error extracting ..." placeholders together with the error, so callers
// that only want best-effort metadata can ignore the error.
func (e *Extractor) Extract(ctx context.Context, url string) (model.TrackInfo, error) {
	html, err := e.fetcher.GetString(ctx, url)
	if err != nil {
		e.logger.Warn("track page fetch failed", "url", url, "error", err)
		return model.TrackInfo{
			Title:  model.TitleExtractionError,
			Artist: model.ArtistExtractionError,
		}, err
	}

	info := ParseTrackPage(html)
	e.logger.Debug("track metadata extracted",
		"url", url,
		"title", info.Title,
		"artist", info.Artist,
		"genre", info.Genre,
	)
	return info, nil
}

// ParseTrackPage extracts track metadata from the HTML of a track page.
//
// Missing title and artist are reported as model.TitleNotFound and
// model.ArtistNotFound. Genre and artwork are left empty when absent.
func ParseTrackPage(html string) model.TrackInfo {
	doc := soup.HTMLParse(html)

	title := findTitle(doc)
	artist := findArtist(doc)

	if a, t, ok := SplitArtistTitle(title); ok {
		artist = a
		title = t
	}

	return model.TrackInfo{
		Title:      FormatTitle(title),
		Artist:     CollapseSpaces(artist),
		Genre:      CollapseSpaces(metaContent(doc, "itemprop", "genre")),
		ArtworkURL: strings.TrimSpace(metaContent(doc, "property", "og:image")),
	}
}

func findTitle(doc soup.Root) string {
	if title := metaContent(doc, "property", "og:title"); title != "" {
		return title
	}
	if m := titleTagPattern.FindStringSubmatch(titleText(doc)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return model.TitleNotFound
}

func findArtist(doc soup.Root) string {
	if artist := uploaderName(doc); artist != "" {
		return artist
	}
	if artist := schemaArtist(doc); artist != "" {
		return artist
	}
	if m := titleTagPattern.FindStringSubmatch(titleText(doc)); m != nil {
		return strings.TrimSpace(m[2])
	}
	return model.ArtistNotFound
}

// uploaderName resolves the soundcloud:user profile URL to the display name
// of the matching profile link on the page.
func uploaderName(doc soup.Root) string {
	profile := metaContent(doc, "property", "soundcloud:user")
	if profile == "" {
		return ""
	}
	m := profileURLPattern.FindStringSubmatch(profile)
	if m == nil {
		return ""
	}
	link := doc.Find("a", "href", "/"+m[1])
	if link.Error != nil {
		return ""
	}
	return strings.TrimSpace(link.FullText())
}

func schemaArtist(doc soup.Root) string {
	by := doc.Find("div", "itemprop", "byArtist")
	if by.Error != nil {
		return ""
	}
	name := by.Find("meta", "itemprop", "name")
	if name.Error != nil {
		return ""
	}
	return name.Attrs()["content"]
}

func titleText(doc soup.Root) string {
	t := doc.Find("title")
	if t.Error != nil {
		return ""
	}
	return t.FullText()
}

func metaContent(doc soup.Root, attr, value string) string {
	meta := doc.Find("meta", attr, value)
	if meta.Error != nil {
		return ""
	}
	return meta.Attrs()["content"]
}
