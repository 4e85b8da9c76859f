package xinput

import (
	"fmt"
	"log"
	"math/bits"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/tdooms/tracker/pkg/input"
)

// buttonMasks are the pointer button bits reported by QueryPointer
var buttonMasks = []uint16{
	xproto.KeyButMaskButton1,
	xproto.KeyButMaskButton2,
	xproto.KeyButMaskButton3,
	xproto.KeyButMaskButton4,
	xproto.KeyButMaskButton5,
}

// Listener samples the X server keymap and pointer at a fixed interval
// and reports the edges to the recorder. Polling the keymap needs no
// special permissions, unlike grabbing the input devices.
type Listener struct {
	conn     *xgb.Conn
	root     xproto.Window
	interval time.Duration

	prevKeys    [32]byte
	prevButtons uint16
	prevX       int16
	prevY       int16
	primed      bool

	stopChan chan struct{}
	done     chan struct{}
}

// NewListener connects to the X server named by DISPLAY
func NewListener(interval time.Duration) (*Listener, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	return &Listener{
		conn:     conn,
		root:     root,
		interval: interval,
	}, nil
}

// Name identifies the listener
func (l *Listener) Name() string {
	return "x11-input"
}

// Start launches the sampling loop
func (l *Listener) Start(rec input.Recorder) error {
	if l.conn == nil {
		return fmt.Errorf("X connection is closed")
	}

	l.stopChan = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(rec)
	return nil
}

// Stop ends the sampling loop and drops the X connection
func (l *Listener) Stop() {
	if l.stopChan == nil {
		return
	}
	close(l.stopChan)

	select {
	case <-l.done:
	case <-time.After(time.Second):
		log.Println("Input listener did not stop in time")
	}
	l.stopChan = nil

	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
}

func (l *Listener) run(rec input.Recorder) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.sample(rec)
		}
	}
}

func (l *Listener) sample(rec input.Recorder) {
	keymap, err := xproto.QueryKeymap(l.conn).Reply()
	if err != nil {
		log.Printf("Keymap query failed: %v", err)
		return
	}

	pointer, err := xproto.QueryPointer(l.conn, l.root).Reply()
	if err != nil {
		log.Printf("Pointer query failed: %v", err)
		return
	}

	l.apply(rec, keymap.Keys, pointer.RootX, pointer.RootY, pointer.Mask)
}

// apply feeds the difference between the previous and the current
// sample to the recorder. The first sample establishes the baseline.
func (l *Listener) apply(rec input.Recorder, keys []byte, x, y int16, mask uint16) {
	if !l.primed {
		copy(l.prevKeys[:], keys)
		l.prevButtons = mask
		l.prevX, l.prevY = x, y
		l.primed = true
		rec.RecordMouseMove(int(x), int(y))
		return
	}

	for i := 0; i < countNewKeys(l.prevKeys[:], keys); i++ {
		rec.RecordKeyPress()
	}
	copy(l.prevKeys[:], keys)

	for _, bit := range buttonMasks {
		pressed := mask&bit != 0
		if pressed != (l.prevButtons&bit != 0) {
			rec.RecordMouseClick(pressed)
		}
	}
	l.prevButtons = mask

	// Reporting an unchanged position would keep resetting the idle
	// clock, only movement counts as activity
	if x != l.prevX || y != l.prevY {
		rec.RecordMouseMove(int(x), int(y))
		l.prevX, l.prevY = x, y
	}
}

// countNewKeys counts the keymap bits set in cur that were clear in
// prev. Keys held across samples are only counted once.
func countNewKeys(prev, cur []byte) int {
	n := 0
	for i := 0; i < len(cur) && i < len(prev); i++ {
		n += bits.OnesCount8(cur[i] &^ prev[i])
	}
	return n
}
