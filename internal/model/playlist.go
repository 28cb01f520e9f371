package model

import (
	"fmt"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a config value ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat. Matching is case-insensitive.
func ParsePlaylistFormat(value string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "m3u", "":
		return PlaylistFormatM3U, nil
	case "pls":
		return PlaylistFormatPLS, nil
	case "wpl":
		return PlaylistFormatWPL, nil
	case "zpl":
		return PlaylistFormatZPL, nil
	}
	return PlaylistFormatM3U, fmt.Errorf("unsupported playlist format %q", value)
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// String returns the config name of the format.
func (pf PlaylistFormat) String() string {
	return strings.TrimPrefix(pf.Extension(), ".")
}
