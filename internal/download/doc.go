// Package download provides the orchestration logic for fetching tracks
// from SoundCloud.
//
// # Manager
//
// The Manager runs one unit of work per URL:
//
//  1. Extract title, artist and genre from the track page (optional)
//  2. Download the audio with yt-dlp
//  3. Tag the file with ID3 metadata and cover art (optional)
//
// and finally writes a playlist of the successful tracks when enabled.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	outcomes, err := manager.Run(ctx, urls)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary := model.Summarize(outcomes)
//
// # Concurrency
//
// settings.Parallel bounds how many units run at once; 1 processes the
// URLs strictly one after another. Outcomes are returned in input order
// whatever the completion order.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// and Progress() returns the finished and total unit counts.
//
// There is no retry logic: a failed unit is reported once and the batch
// moves on.
package download
