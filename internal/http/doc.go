// Package http provides the HTTP client used to fetch track pages and
// cover art.
//
// The Client in this package handles:
//   - A browser-like User-Agent header, which the track pages require
//   - Timeout handling
//   - Rejecting non-success responses
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://soundcloud.com/artist/track")
//
//	// Fetch cover art
//	art, err := client.DownloadBytes(ctx, artworkURL)
package http
