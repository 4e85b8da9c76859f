package xdotool

import (
	"os"
	"testing"

	"github.com/tdooms/tracker/pkg/window"
)

func TestNewDetector(t *testing.T) {
	detector := NewDetector()
	if detector == nil {
		t.Fatal("NewDetector() returned nil")
	}
	if detector.Name() != "xdotool" {
		t.Errorf("Name() = %s, want xdotool", detector.Name())
	}
}

func TestIsAvailable(t *testing.T) {
	detector := NewDetector()

	available := detector.IsAvailable()
	t.Logf("xdotool detector available: %v", available)
	t.Logf("Has xdotool: %v", detector.hasXdotool)
	t.Logf("Has wmctrl: %v", detector.hasWmctrl)
}

func TestCommandExists(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{"sh should exist", "sh", true},
		{"nonexistent command", "nonexistent_command_xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.commandExists(tt.command); got != tt.want {
				t.Errorf("commandExists(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestGetFocusedWindow(t *testing.T) {
	detector := NewDetector()

	if !detector.IsAvailable() || os.Getenv("DISPLAY") == "" {
		t.Skip("xdotool detection not available on this system")
	}

	windowInfo, err := detector.GetFocusedWindow()
	if err != nil {
		t.Logf("GetFocusedWindow() error (may be expected): %v", err)
		return
	}

	if windowInfo == nil {
		t.Fatal("GetFocusedWindow() returned nil windowInfo without error")
	}

	t.Logf("App Name: %s", windowInfo.AppName)
	t.Logf("Window Title: %s", windowInfo.WindowTitle)

	if windowInfo.AppName == "" {
		t.Error("AppName is empty")
	}
}

func TestParseWMClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Standard format",
			input:    `WM_CLASS(STRING) = "Navigator", "Firefox"`,
			expected: "Firefox",
		},
		{
			name:     "Single class",
			input:    `WM_CLASS(STRING) = "kitty", "kitty"`,
			expected: "kitty",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "No equals sign",
			input:    "WM_CLASS(STRING)",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseWMClass(tt.input)
			if result != tt.expected {
				t.Errorf("parseWMClass(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{
			name:  "Hex window ID",
			input: "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3400007\n",
			want:  0x3400007,
		},
		{
			name:  "Multiple IDs",
			input: "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3400007, 0x0\n",
			want:  0x3400007,
		},
		{
			name:    "No ID",
			input:   "_NET_ACTIVE_WINDOW: no such atom on any window.\n",
			wantErr: true,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWindowID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWindowID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseWindowID(%q) = %#x, want %#x", tt.input, got, tt.want)
			}
		})
	}
}

func TestClose(t *testing.T) {
	detector := NewDetector()
	if err := detector.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestDetectorInterface(t *testing.T) {
	var _ window.Detector = (*Detector)(nil)
}
