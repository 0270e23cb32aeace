//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTrackResolve,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpTrackResolve,
			err:      errors.New("no preview available"),
			expected: "Failed to load the next track: no preview available",
		},
		{
			name:     "selection operation",
			op:       OpTrackSelect,
			err:      errors.New("no track matches the current filters"),
			expected: "Failed to find a track matching the filters: no track matches the current filters",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCardResolve,
			context:  "00268",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpCardResolve,
			context:  "00268",
			err:      errors.New("unknown card"),
			expected: "Failed to resolve scanned card '00268': unknown card",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpCardResolve,
			context:  "",
			err:      errors.New("unknown card"),
			expected: "Failed to resolve scanned card: unknown card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpCatalogLoad, OpCardResolve,
		OpTrackSelect, OpTrackResolve, OpRoundStart,
		OpBoardBuild,
		OpPlaybackStart, OpPlaybackResume,
		OpStateOpen, OpHistorySave, OpSettingsSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			result := Format(op, testErr)
			if result == "" {
				t.Error("Format should return non-empty string for non-nil error")
			}

			// Verify the format includes the operation
			expected := "Failed to " + string(op) + ": test error"
			if result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
