package model

import "strings"

// Placeholder values used when a field cannot be recovered from a page.
const (
	TitleNotFound  = "Title not found"
	ArtistNotFound = "Artist not found"

	TitleExtractionError  = "Error extracting title"
	ArtistExtractionError = "Error extracting artist"
)

// TrackInfo holds the metadata recovered for a single track.
//
// An empty string means the field is absent. TrackInfo is built once per
// URL by the metadata extractor and consumed once by the tagger.
//
// Example:
//
//	info := TrackInfo{Title: "Night Drive ft Someone", Artist: "DJ Example"}
//	// info.AlbumArtist() == "DJ Example"
type TrackInfo struct {
	// Title is the track title (TIT2).
	Title string

	// Artist is the lead artist (TPE1). It is also used as album artist.
	Artist string

	// Genre is the content type (TCON).
	Genre string

	// ArtworkURL is the page's cover image, if any.
	ArtworkURL string
}

// HasTitle reports whether a non-blank title is present.
func (t TrackInfo) HasTitle() bool {
	return strings.TrimSpace(t.Title) != ""
}

// HasArtist reports whether a non-blank artist is present.
func (t TrackInfo) HasArtist() bool {
	return strings.TrimSpace(t.Artist) != ""
}

// HasGenre reports whether a non-blank genre is present.
func (t TrackInfo) HasGenre() bool {
	return strings.TrimSpace(t.Genre) != ""
}

// HasArtwork reports whether the page advertised a cover image.
func (t TrackInfo) HasArtwork() bool {
	return strings.TrimSpace(t.ArtworkURL) != ""
}

// IsEmpty reports whether no taggable field is present.
func (t TrackInfo) IsEmpty() bool {
	return !t.HasTitle() && !t.HasArtist() && !t.HasGenre()
}

// AlbumArtist returns the value written to the album artist frame (TPE2).
func (t TrackInfo) AlbumArtist() string {
	return t.Artist
}

// String renders the info in the "title / artist / genre" form used by
// progress messages.
func (t TrackInfo) String() string {
	var b strings.Builder
	b.WriteString("title=")
	b.WriteString(quoteOrDash(t.Title))
	b.WriteString(" artist=")
	b.WriteString(quoteOrDash(t.Artist))
	if t.HasGenre() {
		b.WriteString(" genre=")
		b.WriteString(quoteOrDash(t.Genre))
	}
	return b.String()
}

func quoteOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return `"` + s + `"`
}
