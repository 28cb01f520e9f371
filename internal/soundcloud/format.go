package soundcloud

import (
	"regexp"
	"strings"
)

var (
	// "ARTIST - TITLE" with whitespace around the hyphen.
	artistTitlePattern = regexp.MustCompile(`^(.*?)\s+-\s+(.+)$`)

	withPattern      = regexp.MustCompile(`(?i)\bwith\b`)
	featPattern      = regexp.MustCompile(`(?i)\bfeat\.?\b`)
	featuringPattern = regexp.MustCompile(`(?i)\bfeaturing\b`)

	repeatedSpaces = regexp.MustCompile(` {2,}`)
)

// SplitArtistTitle splits a title of the form "ARTIST - TITLE".
//
// ok is false unless both parts are non-empty after trimming.
func SplitArtistTitle(title string) (artist, track string, ok bool) {
	m := artistTitlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", "", false
	}
	artist = strings.TrimSpace(m[1])
	track = strings.TrimSpace(m[2])
	if artist == "" || track == "" {
		return "", "", false
	}
	return artist, track, true
}

// FormatTitle applies the whole-word substitutions used for tag titles:
// "with" becomes "w/", "feat" and "featuring" become "ft". Matching is
// case-insensitive. Repeated spaces are collapsed afterwards.
func FormatTitle(title string) string {
	title = withPattern.ReplaceAllString(title, "w/")
	title = featPattern.ReplaceAllString(title, "ft")
	title = featuringPattern.ReplaceAllString(title, "ft")
	return CollapseSpaces(title)
}

// CollapseSpaces replaces runs of spaces with a single space and trims the
// result.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(repeatedSpaces.ReplaceAllString(s, " "))
}
