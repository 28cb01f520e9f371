package model

import "path/filepath"

// Outcome is the result of processing one input URL.
type Outcome struct {
	// Index is the position of the URL in the input list.
	Index int

	// URL is the source page that was downloaded.
	URL string

	// Path is the audio file produced by the downloader.
	// Empty when the download failed.
	Path string

	// Info is the metadata that was extracted, if metadata was enabled.
	Info TrackInfo

	// Tagged is true when tags were written to Path.
	Tagged bool

	// Err is the reason the unit failed, nil on success.
	Err error
}

// Success reports whether the unit produced an audio file.
func (o Outcome) Success() bool {
	return o.Err == nil && o.Path != ""
}

// FileName returns the base name of the produced file.
func (o Outcome) FileName() string {
	if o.Path == "" {
		return ""
	}
	return filepath.Base(o.Path)
}

// Summary is the success/failure tally of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize tallies a batch of outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Success() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Successful returns the outcomes that produced a file, in input order.
func Successful(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if o.Success() {
			out = append(out, o)
		}
	}
	return out
}
