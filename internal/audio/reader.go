package audio

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Tags is the subset of embedded metadata shown by the tags command.
type Tags struct {
	Path        string
	Format      string
	Title       string
	Artist      string
	AlbumArtist string
	Genre       string
	HasPicture  bool
}

// ReadTags reads the embedded metadata of an audio file.
//
// Any container supported by github.com/dhowden/tag (ID3v1/v2, MP4, FLAC,
// Ogg) can be read.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags from %s: %w", path, err)
	}

	return Tags{
		Path:        path,
		Format:      string(m.Format()),
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Genre:       m.Genre(),
		HasPicture:  m.Picture() != nil,
	}, nil
}
