// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad Op = "load song catalog"
	OpCardResolve Op = "resolve scanned card"

	// Round operations
	OpTrackSelect  Op = "find a track matching the filters"
	OpTrackResolve Op = "load the next track"
	OpRoundStart   Op = "start the round"

	// Memory board operations
	OpBoardBuild Op = "prepare the memory board"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"

	// State operations
	OpStateOpen    Op = "open saved game state"
	OpHistorySave  Op = "save play history"
	OpSettingsSave Op = "save settings"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
