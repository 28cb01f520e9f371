// Package logging builds the slog loggers used by the command line tools.
//
// Two formats are supported: "console" (a compact, optionally colored,
// human readable line per record) and "json" (slog's JSON handler with
// short keys and UTC RFC 3339 timestamps).
package logging
