package x11

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/tdooms/tracker/pkg/window"
)

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"UTF8_STRING",
	"_NET_WM_PID",
}

// Detector implements window.Detector over a direct X connection
type Detector struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewDetector connects to the X server named by DISPLAY
func NewDetector() (*Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	atoms := make(map[string]xproto.Atom, len(atomNames))
	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		atoms[name] = reply.Atom
	}

	return &Detector{
		conn:  conn,
		root:  root,
		atoms: atoms,
	}, nil
}

// IsAvailable reports whether the X connection is open
func (d *Detector) IsAvailable() bool {
	return d.conn != nil
}

// Name identifies the detection backend
func (d *Detector) Name() string {
	return "x11"
}

// GetFocusedWindow returns information about the currently focused window.
// A nil result means no window holds focus right now.
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("X connection is closed")
	}

	win := d.activeWindow()
	if win == 0 {
		return nil, nil
	}

	title := d.windowName(win)
	if title == "" {
		return nil, nil
	}

	return &window.WindowInfo{
		AppName:     d.appName(win),
		WindowTitle: title,
	}, nil
}

// activeWindow finds the focused top-level window. Focus is briefly
// unset while the window manager switches windows, so a few attempts
// are made before giving up.
func (d *Detector) activeWindow() xproto.Window {
	for attempt := 0; attempt < 5; attempt++ {
		if attempt > 0 {
			time.Sleep(20 * time.Millisecond)
		}
		if win := d.lookupActiveWindow(); win != 0 {
			return win
		}
	}
	return 0
}

func (d *Detector) lookupActiveWindow() xproto.Window {
	prop, err := xproto.GetProperty(d.conn, false, d.root,
		d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 0, 1).Reply()
	if err == nil && len(prop.Value) >= 4 {
		if win := xproto.Window(xgb.Get32(prop.Value)); win != 0 && d.windowName(win) != "" {
			return win
		}
	}

	// Window managers without EWMH support leave the property unset,
	// fall back to the raw input focus
	focus, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil {
		return 0
	}
	focused := focus.Focus
	if focused == 0 || focused == xproto.Window(xproto.InputFocusPointerRoot) {
		return 0
	}

	win := d.topLevelParent(focused)
	if d.windowName(win) == "" {
		return 0
	}
	return win
}

// topLevelParent climbs the window tree until it finds a named window
// or reaches the child of the root
func (d *Detector) topLevelParent(win xproto.Window) xproto.Window {
	for win != 0 && win != d.root {
		if d.windowName(win) != "" {
			return win
		}
		tree, err := xproto.QueryTree(d.conn, win).Reply()
		if err != nil || tree.Parent == 0 || tree.Parent == d.root {
			return win
		}
		win = tree.Parent
	}
	return win
}

// windowName reads _NET_WM_NAME and falls back to the legacy WM_NAME
func (d *Detector) windowName(win xproto.Window) string {
	prop, err := xproto.GetProperty(d.conn, false, win,
		d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 0, 1<<16).Reply()
	if err == nil && len(prop.Value) > 0 {
		return string(prop.Value)
	}

	prop, err = xproto.GetProperty(d.conn, false, win,
		xproto.AtomWmName, xproto.GetPropertyTypeAny, 0, 1<<16).Reply()
	if err == nil && len(prop.Value) > 0 {
		return string(prop.Value)
	}
	return ""
}

// appName picks the application name from WM_CLASS, falling back to
// the process name for windows that do not set a class
func (d *Detector) appName(win xproto.Window) string {
	instance, class := d.windowClass(win)
	if class != "" {
		return class
	}
	if instance != "" {
		return instance
	}
	if name := processName(d.windowPID(win)); name != "" {
		return name
	}
	return "Unknown"
}

// windowClass returns the instance and class parts of WM_CLASS
func (d *Detector) windowClass(win xproto.Window) (string, string) {
	prop, err := xproto.GetProperty(d.conn, false, win,
		xproto.AtomWmClass, xproto.AtomString, 0, 1<<10).Reply()
	if err != nil || len(prop.Value) == 0 {
		return "", ""
	}

	var fields []string
	for _, part := range strings.Split(string(prop.Value), "\x00") {
		if part != "" {
			fields = append(fields, part)
		}
	}

	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}

// windowPID reads _NET_WM_PID, 0 when the window does not expose one
func (d *Detector) windowPID(win xproto.Window) int {
	prop, err := xproto.GetProperty(d.conn, false, win,
		d.atoms["_NET_WM_PID"], xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || len(prop.Value) < 4 {
		return 0
	}
	return int(xgb.Get32(prop.Value))
}

// processName resolves a PID to its command name via /proc
func processName(pid int) string {
	if pid <= 0 {
		return ""
	}
	comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(comm))
}

// Close drops the X connection
func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}
