package tracker

import (
	"log"
	"time"

	"github.com/tdooms/tracker/pkg/window"
)

// Observer polls a window detector and remembers the focused window of
// the previous poll so the service can detect focus changes.
type Observer struct {
	detector window.Detector

	current      *window.WindowInfo
	currentSince time.Time
}

// NewObserver returns an observer for the given detector.
func NewObserver(detector window.Detector) *Observer {
	return &Observer{detector: detector}
}

// Sample asks the detector for the focused window. Detection errors
// and windows without a title are folded into nil, meaning no usable
// focus information.
func (o *Observer) Sample() *window.WindowInfo {
	info, err := o.detector.GetFocusedWindow()
	if err != nil {
		log.Printf("Window detection failed: %v", err)
		return nil
	}
	if info == nil || info.WindowTitle == "" {
		return nil
	}
	return info
}

// HasChanged reports whether the sampled window differs from the one
// recorded at the last commit.
func (o *Observer) HasChanged(sample *window.WindowInfo) bool {
	if o.current == nil && sample == nil {
		return false
	}
	if o.current == nil || sample == nil {
		return true
	}
	return o.current.AppName != sample.AppName || o.current.WindowTitle != sample.WindowTitle
}

// Current returns the committed window and the time it gained focus.
func (o *Observer) Current() (*window.WindowInfo, time.Time) {
	return o.current, o.currentSince
}

// Commit records the sampled window as the new focused window starting
// at the given time.
func (o *Observer) Commit(sample *window.WindowInfo, at time.Time) {
	o.current = sample
	o.currentSince = at
}
