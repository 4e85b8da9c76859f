package tracker

import (
	"math"
	"sync"
	"time"
)

// Metrics holds the input counters accumulated since the last drain.
type Metrics struct {
	KeyPresses    int64
	MouseClicks   int64
	MouseDistance int64
}

// Any reports whether at least one counter is non-zero.
func (m Metrics) Any() bool {
	return m.KeyPresses > 0 || m.MouseClicks > 0 || m.MouseDistance > 0
}

// Aggregator accumulates input events from listeners and tracks the
// time of the most recent activity. All methods are safe for
// concurrent use.
type Aggregator struct {
	mu            sync.Mutex
	keyPresses    int64
	mouseClicks   int64
	mouseDistance int64
	lastActivity  time.Time

	lastX    int
	lastY    int
	hasMouse bool

	now func() time.Time
}

// NewAggregator returns an aggregator with all counters at zero and
// the activity clock primed to the current time.
func NewAggregator() *Aggregator {
	a := &Aggregator{now: time.Now}
	a.lastActivity = a.now()
	return a
}

// RecordKeyPress counts a single key press.
func (a *Aggregator) RecordKeyPress() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keyPresses++
	a.lastActivity = a.now()
}

// RecordMouseMove accumulates the distance between the previous and the
// new pointer position. The first call only establishes the position.
func (a *Aggregator) RecordMouseMove(x, y int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hasMouse {
		dx := float64(x - a.lastX)
		dy := float64(y - a.lastY)
		a.mouseDistance += int64(math.Sqrt(dx*dx + dy*dy))
	}
	a.lastX = x
	a.lastY = y
	a.hasMouse = true
	a.lastActivity = a.now()
}

// RecordMouseClick counts a button press. Releases are ignored.
func (a *Aggregator) RecordMouseClick(pressed bool) {
	if !pressed {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mouseClicks++
	a.lastActivity = a.now()
}

// RecordControllerEvent marks the user as active when a controller
// reports a non-zero state. Controller input keeps no counter of its
// own, it only resets the idle clock.
func (a *Aggregator) RecordControllerEvent(state int) {
	if state == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = a.now()
}

// DrainMetrics returns the accumulated counters and resets them to
// zero in the same step.
func (a *Aggregator) DrainMetrics() Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()

	m := Metrics{
		KeyPresses:    a.keyPresses,
		MouseClicks:   a.mouseClicks,
		MouseDistance: a.mouseDistance,
	}
	a.keyPresses = 0
	a.mouseClicks = 0
	a.mouseDistance = 0
	return m
}

// IdleTime returns how long ago the last input event was recorded.
func (a *Aggregator) IdleTime() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.now().Sub(a.lastActivity)
}

// ResetIdleTimer restarts the idle clock without touching the counters.
func (a *Aggregator) ResetIdleTimer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = a.now()
}
