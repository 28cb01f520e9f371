// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writing (playlists)
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	// Ensure the output directory exists
//	err := ioutils.EnsureDir("./out")
//
//	// Write a playlist next to the tracks
//	err := ioutils.WriteFile(ctx, "./out/soundcloud.m3u", content)
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Mix: Part 1/2") // Returns "Mix_ Part 1_2"
//
// # Image Processing
//
// The ImageService prepares artwork for embedding in ID3 tags:
//
//	svc := ioutils.NewImageService()
//	jpeg, err := svc.PrepareArtwork(ctx, artworkData, 1000)
package ioutils
