package gamepad

import (
	"log"
	"time"

	"github.com/0xcafed00d/joystick"

	"github.com/tdooms/tracker/pkg/input"
)

// device is the part of joystick.Joystick the poll loop needs
type device interface {
	Read() (joystick.State, error)
}

// Listener polls a game controller and reports state changes as
// activity. Controllers come and go at runtime, so the listener keeps
// retrying the device until stopped.
type Listener struct {
	id       int
	interval time.Duration

	stopChan chan struct{}
	done     chan struct{}
}

// NewListener polls the controller with the given /dev/input/js index
func NewListener(id int, interval time.Duration) *Listener {
	return &Listener{
		id:       id,
		interval: interval,
	}
}

// Name identifies the listener
func (l *Listener) Name() string {
	return "gamepad"
}

// Start launches the polling loop. Starting succeeds even when no
// controller is plugged in yet.
func (l *Listener) Start(rec input.Recorder) error {
	l.stopChan = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(rec)
	return nil
}

// Stop ends the polling loop
func (l *Listener) Stop() {
	if l.stopChan == nil {
		return
	}
	close(l.stopChan)

	select {
	case <-l.done:
	case <-time.After(time.Second):
		log.Println("Gamepad listener did not stop in time")
	}
	l.stopChan = nil
}

// run keeps a connection to the controller alive until stopped
func (l *Listener) run(rec input.Recorder) {
	defer close(l.done)

	logged := false
	for {
		js, err := joystick.Open(l.id)
		if err != nil {
			if !logged {
				log.Printf("Controller %d unavailable: %v", l.id, err)
				logged = true
			}
			if !l.pause() {
				return
			}
			continue
		}
		logged = false

		log.Printf("Controller connected: %s (%d axes, %d buttons)",
			js.Name(), js.AxisCount(), js.ButtonCount())

		l.poll(rec, js)
		js.Close()

		if !l.pause() {
			return
		}
	}
}

// pause waits out the reconnect delay, false when stopped
func (l *Listener) pause() bool {
	select {
	case <-l.stopChan:
		return false
	case <-time.After(time.Second):
		return true
	}
}

// poll reads controller state until the device fails or the listener
// is stopped. The first read establishes the baseline.
func (l *Listener) poll(rec input.Recorder, dev device) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var prev joystick.State
	primed := false

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			state, err := dev.Read()
			if err != nil {
				log.Printf("Controller read failed: %v", err)
				return
			}

			if !primed {
				prev = state
				primed = true
				continue
			}

			for _, ev := range stateEvents(prev, state) {
				rec.RecordControllerEvent(ev)
			}
			prev = state
		}
	}
}

// stateEvents turns the difference between two controller states into
// event values. Held buttons and resting axes produce nothing.
func stateEvents(prev, cur joystick.State) []int {
	var events []int

	if cur.Buttons != prev.Buttons {
		events = append(events, int(cur.Buttons))
	}

	for i := range cur.AxisData {
		if i >= len(prev.AxisData) || cur.AxisData[i] != prev.AxisData[i] {
			events = append(events, cur.AxisData[i])
		}
	}

	return events
}
