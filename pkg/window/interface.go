package window

// WindowInfo represents information about the currently focused window
type WindowInfo struct {
	AppName     string
	WindowTitle string
}

// Detector is the interface that all window detection backends must satisfy
type Detector interface {
	// GetFocusedWindow returns information about the currently focused
	// window. A nil result without an error means no window has focus.
	GetFocusedWindow() (*WindowInfo, error)

	// IsAvailable checks if this backend can run on the current system
	IsAvailable() bool

	// Name returns a short identifier for the backend
	Name() string

	// Close cleans up any resources used by the detector
	Close() error
}
