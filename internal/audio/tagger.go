package audio

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bogem/id3v2"

	"github.com/handiism/soundcloud-downloader/internal/model"
)

// ID3v2 frame IDs written by the Tagger.
const (
	frameTitle       = "TIT2"
	frameArtist      = "TPE1"
	frameAlbumArtist = "TPE2"
	frameGenre       = "TCON"
	framePicture     = "APIC"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty removes the frame.
	TagEmpty TagEditAction = iota

	// TagModify writes the extracted value when it is non-empty.
	TagModify

	// TagDoNotModify leaves the existing frame unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are modified.
	ModifyTags bool

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every frame is
// set to TagModify.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Title:       TagModify,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Genre:       TagModify,
	}
}

// Tagger writes ID3 tags to audio files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(path, info, nil); err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes info (and optional JPEG artwork) into the ID3v2 tag of
// the file at path.
//
// This method:
//  1. Opens the file's tag, starting from an empty tag when the file has
//     none or the existing one cannot be parsed
//  2. Sets title, artist, album artist and genre when present and non-empty
//  3. Embeds cover art if artwork bytes are provided
//  4. Saves the tag back to the file
func (t *Tagger) SaveTags(path string, info model.TrackInfo, artwork []byte) error {
	tag, err := openTag(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, info)
	}

	if len(artwork) > 0 {
		updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags for %s: %w", path, err)
	}
	return nil
}

func openTag(path string) (*id3v2.Tag, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		return tag, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// Unreadable tag: replace it with a fresh one.
	tag, err = id3v2.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		return nil, fmt.Errorf("open tags for %s: %w", path, err)
	}
	return tag, nil
}

// updateStringTags updates text frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, info model.TrackInfo) {
	applyText(tag, frameTitle, t.config.Title, info.Title)
	applyText(tag, frameArtist, t.config.Artist, info.Artist)
	applyText(tag, frameAlbumArtist, t.config.AlbumArtist, info.AlbumArtist())
	applyText(tag, frameGenre, t.config.Genre, info.Genre)
}

func applyText(tag *id3v2.Tag, id string, action TagEditAction, value string) {
	switch action {
	case TagEmpty:
		tag.DeleteFrames(id)
	case TagModify:
		if value != "" {
			tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		}
	}
}

// updateArtwork embeds cover art as the front cover picture.
func updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(framePicture)

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
