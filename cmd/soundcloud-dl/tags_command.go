package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/soundcloud-downloader/internal/audio"
)

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags FILE...",
		Short: "Show the tags embedded in audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			failed := 0
			for _, path := range args {
				tags, err := audio.ReadTags(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				artwork := "no"
				if tags.HasPicture {
					artwork = "yes"
				}
				rows = append(rows, []string{
					filepath.Base(tags.Path),
					tags.Format,
					tags.Title,
					tags.Artist,
					tags.AlbumArtist,
					tags.Genre,
					artwork,
				})
			}

			if len(rows) > 0 {
				headers := []string{"File", "Format", "Title", "Artist", "Album artist", "Genre", "Artwork"}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			}
			if failed > 0 {
				return fmt.Errorf("could not read tags from %d of %d files", failed, len(args))
			}
			return nil
		},
	}
}
