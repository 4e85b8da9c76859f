package detector

import (
	"fmt"
	"log"
	"os"

	"github.com/tdooms/tracker/pkg/integrations/x11"
	"github.com/tdooms/tracker/pkg/integrations/xdotool"
	"github.com/tdooms/tracker/pkg/window"
)

// New picks the best available window detection backend. The direct
// X connection is preferred, the command line tools are the fallback.
func New() (window.Detector, error) {
	d, err := x11.NewDetector()
	if err == nil {
		return d, nil
	}
	log.Printf("X connection unavailable, trying fallback: %v", err)

	if fallback := xdotool.NewDetector(); fallback.IsAvailable() {
		return fallback, nil
	}

	return nil, fmt.Errorf("no window detection backend available (X connection or xdotool required)")
}

// DetectDisplayServer reports which display server the session runs on
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
