package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/tdooms/tracker/pkg/window"
)

// stubDetector returns a fixed window and can be reconfigured between
// polls.
type stubDetector struct {
	info   *window.WindowInfo
	err    error
	closed bool
}

func (d *stubDetector) GetFocusedWindow() (*window.WindowInfo, error) {
	return d.info, d.err
}

func (d *stubDetector) IsAvailable() bool { return true }
func (d *stubDetector) Name() string      { return "stub" }
func (d *stubDetector) Close() error {
	d.closed = true
	return nil
}

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		info *window.WindowInfo
		err  error
		want *window.WindowInfo
	}{
		{
			name: "valid window",
			info: &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"},
			want: &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"},
		},
		{
			name: "detection error",
			info: &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"},
			err:  errors.New("connection lost"),
			want: nil,
		},
		{
			name: "no focused window",
			info: nil,
			want: nil,
		},
		{
			name: "window without title",
			info: &window.WindowInfo{AppName: "firefox", WindowTitle: ""},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver(&stubDetector{info: tt.info, err: tt.err})
			got := o.Sample()

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Sample() = %v, want %v", got, tt.want)
			}
			if got != nil && (got.AppName != tt.want.AppName || got.WindowTitle != tt.want.WindowTitle) {
				t.Errorf("Sample() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHasChanged(t *testing.T) {
	firefox := &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"}

	tests := []struct {
		name    string
		current *window.WindowInfo
		sample  *window.WindowInfo
		want    bool
	}{
		{"both absent", nil, nil, false},
		{"window appeared", nil, firefox, true},
		{"window vanished", firefox, nil, true},
		{"same window", firefox, &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"}, false},
		{"app changed", firefox, &window.WindowInfo{AppName: "code", WindowTitle: "Example"}, true},
		{"title changed", firefox, &window.WindowInfo{AppName: "firefox", WindowTitle: "Other"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver(&stubDetector{})
			o.Commit(tt.current, time.Now())

			if got := o.HasChanged(tt.sample); got != tt.want {
				t.Errorf("HasChanged() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommit(t *testing.T) {
	o := NewObserver(&stubDetector{})
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	info := &window.WindowInfo{AppName: "firefox", WindowTitle: "Example"}

	o.Commit(info, at)

	current, since := o.Current()
	if current != info {
		t.Errorf("Current() window = %+v, want %+v", current, info)
	}
	if !since.Equal(at) {
		t.Errorf("Current() since = %v, want %v", since, at)
	}
}
