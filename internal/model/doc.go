// Package model defines the core data structures used throughout
// the soundcloud-downloader application.
//
// # TrackInfo
//
// TrackInfo is the transient metadata record scraped from a track page
// and written into the downloaded file's ID3 tags:
//
//	info := model.TrackInfo{Title: "Song", Artist: "Someone"}
//	if info.HasTitle() {
//	    fmt.Println(info.Title)
//	}
//
// # Outcome
//
// Outcome is the result of one download unit (one input URL). A batch of
// outcomes is reduced to a Summary for the final tally:
//
//	summary := model.Summarize(outcomes)
//	fmt.Printf("Successfully downloaded %d of %d tracks.\n", summary.Succeeded, summary.Total)
//
// # Playlist Format
//
// PlaylistFormat selects the playlist type written after a batch:
//
//	pf, err := model.ParsePlaylistFormat("m3u")
//	fmt.Println(pf.Extension()) // ".m3u"
package model
