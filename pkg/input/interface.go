package input

// Recorder receives raw input events from listeners. Implementations
// must be safe for concurrent use, since every listener delivers from
// its own goroutine.
type Recorder interface {
	// RecordKeyPress counts a single key press
	RecordKeyPress()

	// RecordMouseMove reports the pointer at absolute screen coordinates
	RecordMouseMove(x, y int)

	// RecordMouseClick reports a button transition; only presses count
	RecordMouseClick(pressed bool)

	// RecordControllerEvent reports a controller state value; zero means
	// the control returned to rest and is ignored
	RecordControllerEvent(state int)
}

// Listener is the interface that all input capture backends must satisfy
type Listener interface {
	// Start begins delivering events to the recorder in the background
	Start(rec Recorder) error

	// Stop halts delivery and waits briefly for the backend to exit
	Stop()

	// Name returns a short identifier for the backend
	Name() string
}
