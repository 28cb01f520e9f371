// Package soundcloud extracts track metadata from SoundCloud track pages.
//
// The page markup is scanned for a handful of well-known patterns, each
// with an ordered fallback chain:
//
//  1. Title: og:title meta tag, then the <title> text ("X by Y | Listen ...")
//  2. Artist: the uploader link referenced by the soundcloud:user meta tag,
//     then schema.org byArtist markup, then the <title> text
//  3. Genre: the schema.org genre meta tag
//
// After extraction the title is normalized: an "ARTIST - TITLE" title is
// split into its parts, "with" becomes "w/", "feat"/"featuring" become "ft",
// and repeated spaces are collapsed.
//
// # Usage
//
//	extractor := soundcloud.NewExtractor(http.NewClient(), logger)
//	info, err := extractor.Extract(ctx, "https://soundcloud.com/artist/track")
//	if err != nil {
//	    // info holds placeholder values
//	}
//
// ParseTrackPage can be used directly on HTML that was fetched elsewhere.
package soundcloud
