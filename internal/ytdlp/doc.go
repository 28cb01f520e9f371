// Package ytdlp drives the external yt-dlp binary that fetches and
// transcodes the audio of a track page.
//
// The downloader runs one subprocess per URL, captures its combined output
// in a per-call temporary file, and recovers the final file path from the
// line yt-dlp prints after post-processing.
//
// # Example
//
//	d := ytdlp.NewDownloader("yt-dlp", logger)
//	path, err := d.Download(ctx, url, ytdlp.Options{
//	    OutputDir: "./out",
//	    Format:    "mp3",
//	    Quality:   "320k",
//	})
//
// Availability of yt-dlp and ffmpeg can be checked up front with
// CheckBinaries(DefaultRequirements("yt-dlp")).
package ytdlp
