package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/soundcloud-downloader/internal/model"
)

// writeFakeMP3 writes a file that starts with an MPEG frame header and has
// no tag.
func writeFakeMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	data := append([]byte{0xFF, 0xFB, 0x90, 0x64}, bytes.Repeat([]byte{0x00}, 413)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fake mp3: %v", err)
	}
	return path
}

func openForCheck(t *testing.T, path string) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen tags: %v", err)
	}
	t.Cleanup(func() { tag.Close() })
	return tag
}

func TestTagger_SaveTags(t *testing.T) {
	path := writeFakeMP3(t)
	info := model.TrackInfo{Title: "Night Drive ft Singer", Artist: "DJ Example", Genre: "Deep House"}

	tagger := NewTagger(nil)
	if err := tagger.SaveTags(path, info, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag := openForCheck(t, path)
	if got := tag.Title(); got != info.Title {
		t.Errorf("Title = %q, want %q", got, info.Title)
	}
	if got := tag.Artist(); got != info.Artist {
		t.Errorf("Artist = %q, want %q", got, info.Artist)
	}
	if got := tag.GetTextFrame(frameAlbumArtist).Text; got != info.Artist {
		t.Errorf("Album artist = %q, want %q", got, info.Artist)
	}
	if got := tag.Genre(); got != info.Genre {
		t.Errorf("Genre = %q, want %q", got, info.Genre)
	}
}

func TestTagger_SkipsEmptyFields(t *testing.T) {
	path := writeFakeMP3(t)
	tagger := NewTagger(DefaultTagConfig())

	first := model.TrackInfo{Title: "Original", Artist: "Someone", Genre: "Techno"}
	if err := tagger.SaveTags(path, first, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	// Empty fields must not clobber what is already there.
	second := model.TrackInfo{Title: "Renamed"}
	if err := tagger.SaveTags(path, second, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag := openForCheck(t, path)
	if got := tag.Title(); got != "Renamed" {
		t.Errorf("Title = %q, want %q", got, "Renamed")
	}
	if got := tag.Artist(); got != "Someone" {
		t.Errorf("Artist = %q, want %q", got, "Someone")
	}
	if got := tag.Genre(); got != "Techno" {
		t.Errorf("Genre = %q, want %q", got, "Techno")
	}
}

func TestTagger_TagEmptyRemovesFrame(t *testing.T) {
	path := writeFakeMP3(t)
	if err := NewTagger(nil).SaveTags(path, model.TrackInfo{Title: "T", Genre: "Pop"}, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	cfg := DefaultTagConfig()
	cfg.Genre = TagEmpty
	if err := NewTagger(cfg).SaveTags(path, model.TrackInfo{Title: "T"}, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag := openForCheck(t, path)
	if got := tag.Genre(); got != "" {
		t.Errorf("Genre = %q, want it removed", got)
	}
}

func TestTagger_ModifyTagsDisabled(t *testing.T) {
	path := writeFakeMP3(t)
	cfg := DefaultTagConfig()
	cfg.ModifyTags = false

	if err := NewTagger(cfg).SaveTags(path, model.TrackInfo{Title: "Ignored"}, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag := openForCheck(t, path)
	if got := tag.Title(); got != "" {
		t.Errorf("Title = %q, want empty when ModifyTags is false", got)
	}
}

func TestTagger_Artwork(t *testing.T) {
	path := writeFakeMP3(t)
	artwork := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

	if err := NewTagger(nil).SaveTags(path, model.TrackInfo{Title: "T"}, artwork); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag := openForCheck(t, path)
	pics := tag.GetFrames(framePicture)
	if len(pics) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pics))
	}
	pic, ok := pics[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("unexpected frame type %T", pics[0])
	}
	if !bytes.Equal(pic.Picture, artwork) {
		t.Error("embedded artwork does not match")
	}
}

func TestTagger_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	if err := NewTagger(nil).SaveTags(missing, model.TrackInfo{Title: "T"}, nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadTags(t *testing.T) {
	path := writeFakeMP3(t)
	info := model.TrackInfo{Title: "Night Drive", Artist: "DJ Example", Genre: "House"}
	if err := NewTagger(nil).SaveTags(path, info, nil); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tags, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if tags.Title != info.Title || tags.Artist != info.Artist || tags.AlbumArtist != info.Artist {
		t.Errorf("ReadTags() = %+v, want title/artist/album artist from %+v", tags, info)
	}
	if tags.Genre != info.Genre {
		t.Errorf("Genre = %q, want %q", tags.Genre, info.Genre)
	}
	if tags.HasPicture {
		t.Error("HasPicture should be false without artwork")
	}
}

func TestReadTags_NoTags(t *testing.T) {
	path := writeFakeMP3(t)
	if _, err := ReadTags(path); err == nil {
		t.Fatal("expected error for file without tags")
	}
}
