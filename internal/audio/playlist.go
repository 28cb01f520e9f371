package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/soundcloud-downloader/internal/model"
)

// PlaylistCreator generates playlist files in various formats.
//
// PlaylistCreator takes the successful outcomes of a batch and generates a
// playlist referencing the downloaded files. The output is a string that
// can be written to a file in the output directory.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist("SoundCloud", outcomes)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// Song Title.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with title info
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects the M3U format.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format produced by the creator.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for the outcomes that produced
// a file. Entries are the base file names, so the playlist must be stored
// next to the tracks. Track lengths are not known and are written as -1
// where the format requires one.
func (p *PlaylistCreator) CreatePlaylist(name string, outcomes []model.Outcome) string {
	entries := model.Successful(outcomes)

	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(entries)
	case model.PlaylistFormatWPL:
		return p.createWPL(name, entries)
	case model.PlaylistFormatZPL:
		return p.createZPL(name, entries)
	default:
		return p.createM3U(entries)
	}
}

// createM3U generates an M3U playlist.
func (p *PlaylistCreator) createM3U(entries []model.Outcome) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", displayName(e)))
		}
		sb.WriteString(e.FileName() + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []model.Outcome) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.FileName()))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, displayName(e)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(name string, entries []model.Outcome) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.FileName())))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but carries per-track title and artist attributes.
func (p *PlaylistCreator) createZPL(name string, entries []model.Outcome) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"SoundCloudDownloader\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" albumArtist=\"%s\"/>\n",
			escapeXML(e.FileName()),
			escapeXML(trackTitle(e)),
			escapeXML(e.Info.Artist),
			escapeXML(e.Info.AlbumArtist())))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// displayName renders "Artist - Title", falling back to the file name when
// no metadata was extracted.
func displayName(e model.Outcome) string {
	title := trackTitle(e)
	if e.Info.HasArtist() {
		return e.Info.Artist + " - " + title
	}
	return title
}

func trackTitle(e model.Outcome) string {
	if e.Info.HasTitle() {
		return e.Info.Title
	}
	name := e.FileName()
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
