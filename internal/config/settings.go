package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/soundcloud-downloader/internal/audio"
	"github.com/handiism/soundcloud-downloader/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir      string   `toml:"output_dir" comment:"Directory audio files are written to"`
	Format         string   `toml:"format" comment:"Audio format passed to yt-dlp (mp3, m4a, opus, flac, ...)"`
	Quality        string   `toml:"quality" comment:"Audio quality passed to yt-dlp (e.g. 320k, or 0-10 VBR)"`
	Parallel       int      `toml:"parallel" comment:"Maximum number of tracks processed at once"`
	YtdlpBinary    string   `toml:"ytdlp_binary"`
	YtdlpExtraArgs []string `toml:"ytdlp_extra_args"`

	// Metadata settings
	WithMetadata bool   `toml:"with_metadata" comment:"Extract track info from the page and write ID3 tags"`
	Genre        string `toml:"genre" comment:"Overrides the extracted genre when set"`

	// Cover art settings
	EmbedArtwork   bool `toml:"embed_artwork"`
	ArtworkMaxSize int  `toml:"artwork_max_size" comment:"Longest edge in pixels; 0 keeps the original size"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format" comment:"m3u, pls, wpl or zpl"`
	PlaylistName   string `toml:"playlist_name"`
	M3UExtended    bool   `toml:"m3u_extended"`

	// HTTP settings
	HTTPTimeout int    `toml:"http_timeout" comment:"Page and artwork request timeout in seconds"`
	UserAgent   string `toml:"user_agent"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// audioFormats lists the values yt-dlp accepts for --audio-format.
var audioFormats = map[string]bool{
	"best":   true,
	"aac":    true,
	"alac":   true,
	"flac":   true,
	"m4a":    true,
	"mp3":    true,
	"opus":   true,
	"vorbis": true,
	"wav":    true,
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:   "./out",
		Format:      "mp3",
		Quality:     "320k",
		Parallel:    4,
		YtdlpBinary: "yt-dlp",

		WithMetadata: true,

		EmbedArtwork:   false,
		ArtworkMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		PlaylistName:   "soundcloud",
		M3UExtended:    true,

		HTTPTimeout: 60,

		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "soundcloud-dl", "config.toml"), nil
}

// Load reads settings from a TOML file.
//
// A missing file is not an error: defaults are returned. Keys absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file).DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate ensures the settings are usable. The audio format is normalized
// to lower case, the form yt-dlp expects.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.OutputDir) == "" {
		return errors.New("output_dir must be set")
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if !audioFormats[s.Format] {
		return fmt.Errorf("format: unsupported audio format %q", s.Format)
	}
	if strings.TrimSpace(s.Quality) == "" {
		return errors.New("quality must be set")
	}
	if s.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", s.Parallel)
	}
	if s.ArtworkMaxSize < 0 {
		return fmt.Errorf("artwork_max_size must not be negative, got %d", s.ArtworkMaxSize)
	}
	if _, err := model.ParsePlaylistFormat(s.PlaylistFormat); err != nil {
		return err
	}
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative, got %d", s.HTTPTimeout)
	}
	switch strings.ToLower(strings.TrimSpace(s.LogFormat)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", s.LogFormat)
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.HTTPTimeout) * time.Second
}

// ToPlaylistFormat converts the playlist_format setting, falling back to M3U.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	pf, err := model.ParsePlaylistFormat(s.PlaylistFormat)
	if err != nil {
		return model.PlaylistFormatM3U
	}
	return pf
}

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.WithMetadata
	return cfg
}
