// Package audio provides audio file manipulation services including
// ID3 tag writing, tag reading and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to downloaded files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, info, artworkBytes)
//
// The tagger supports:
//   - Title (TIT2)
//   - Artist (TPE1) and Album Artist (TPE2)
//   - Genre (TCON)
//   - Cover Art (APIC, embedded in the file)
//
// # Reading Tags
//
//	tags, err := audio.ReadTags(path)
//	fmt.Println(tags.Title, tags.Artist)
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("SoundCloud", outcomes)
//	os.WriteFile("SoundCloud.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
