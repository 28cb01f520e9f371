package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-downloader/internal/config"
	"github.com/handiism/soundcloud-downloader/internal/logging"
)

var errNoURLs = errors.New("at least one URL is required")

// rootOptions holds the flag values shared by every command.
type rootOptions struct {
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string
}

// downloadOptions holds the flags of the download (root) command.
type downloadOptions struct {
	outputDir      string
	format         string
	quality        string
	noMetadata     bool
	parallel       int
	genre          string
	artwork        bool
	playlist       bool
	playlistFormat string
	noProgress     bool
}

func newRootCommand() *cobra.Command {
	root := &rootOptions{}
	opts := &downloadOptions{}
	defaults := config.DefaultSettings()

	rootCmd := &cobra.Command{
		Use:   "soundcloud-dl [flags] URL...",
		Short: "Download SoundCloud tracks with yt-dlp and tag them",
		Long: "soundcloud-dl downloads the audio of SoundCloud track pages with yt-dlp,\n" +
			"then writes the title, artist and genre found on the page into the file's ID3 tags.",
		Example: "  soundcloud-dl https://soundcloud.com/artist/track\n" +
			"  soundcloud-dl -o ~/Music -f opus -q 0 -j 8 URL1 URL2\n" +
			"  soundcloud-dl --no-metadata URL",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errNoURLs
			}
			settings, err := loadSettings(cmd, root, opts)
			if err != nil {
				return err
			}
			return runDownload(cmd, root, opts, settings, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&root.configPath, "config", "c", "", "Configuration file path (TOML)")
	pf.BoolVarP(&root.verbose, "verbose", "v", false, "Show verbose output")
	pf.StringVar(&root.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	pf.StringVar(&root.logFormat, "log-format", "", "Diagnostic log format (console, json)")

	f := rootCmd.Flags()
	f.StringVarP(&opts.outputDir, "output-dir", "o", defaults.OutputDir, "Output directory")
	f.StringVarP(&opts.format, "format", "f", defaults.Format, "Audio format")
	f.StringVarP(&opts.quality, "quality", "q", defaults.Quality, "Audio quality")
	f.BoolVar(&opts.noMetadata, "no-metadata", false, "Disable metadata extraction and tagging")
	f.IntVarP(&opts.parallel, "parallel", "j", defaults.Parallel, "Number of tracks processed at once")
	f.StringVar(&opts.genre, "genre", "", "Genre written to every track, overriding the extracted one")
	f.BoolVar(&opts.artwork, "artwork", false, "Embed cover art in the tags")
	f.BoolVar(&opts.playlist, "playlist", false, "Write a playlist of the downloaded tracks")
	f.StringVar(&opts.playlistFormat, "playlist-format", defaults.PlaylistFormat, "Playlist format (m3u, pls, wpl, zpl)")
	f.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newCheckCommand(root))
	rootCmd.AddCommand(newTagsCommand())
	rootCmd.AddCommand(newConfigCommand(root))

	return rootCmd
}

// resolveConfigPath returns the -c value, or the per-user default path.
func resolveConfigPath(root *rootOptions) (string, error) {
	if path := strings.TrimSpace(root.configPath); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// loadSettings reads the configuration file and applies the flags that
// were set explicitly on the command line.
func loadSettings(cmd *cobra.Command, root *rootOptions, opts *downloadOptions) (*config.Settings, error) {
	path, err := resolveConfigPath(root)
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		settings.OutputDir = opts.outputDir
	}
	if flags.Changed("format") {
		settings.Format = opts.format
	}
	if flags.Changed("quality") {
		settings.Quality = opts.quality
	}
	if opts.noMetadata {
		settings.WithMetadata = false
	}
	if flags.Changed("parallel") {
		settings.Parallel = opts.parallel
	}
	if flags.Changed("genre") {
		settings.Genre = opts.genre
	}
	if opts.artwork {
		settings.EmbedArtwork = true
	}
	if opts.playlist {
		settings.CreatePlaylist = true
	}
	if flags.Changed("playlist-format") {
		settings.PlaylistFormat = opts.playlistFormat
	}
	applyLogFlags(settings, root)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func applyLogFlags(settings *config.Settings, root *rootOptions) {
	if root.logLevel != "" {
		settings.LogLevel = root.logLevel
	} else if root.verbose {
		settings.LogLevel = "debug"
	}
	if root.logFormat != "" {
		settings.LogFormat = root.logFormat
	}
}

func newLogger(settings *config.Settings, w io.Writer) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: w,
		Color:  shouldColorize(w),
	})
}
