// Package config provides configuration management for soundcloud-dl.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Validation and conversion to the types other packages consume
//
// # Default Settings
//
// Use DefaultSettings() to get the command line defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads mp3 at 320k into ./out
//	// Four tracks processed at once
//	// Metadata extraction and tagging enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Malformed file; a missing file yields defaults
//	}
//
// # Saving Settings
//
//	settings.OutputDir = "/music/soundcloud"
//	err := settings.Save("/path/to/config.toml")
//
// Command line flags override values read from the file.
package config
