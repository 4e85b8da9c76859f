package xdotool

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tdooms/tracker/pkg/window"
)

// Detector implements window.Detector with the xdotool and wmctrl
// command line tools. It is the fallback for systems where a direct
// X connection cannot be opened.
type Detector struct {
	hasXdotool bool
	hasWmctrl  bool
}

// NewDetector probes PATH for the supported tools
func NewDetector() *Detector {
	d := &Detector{}
	d.hasXdotool = d.commandExists("xdotool")
	d.hasWmctrl = d.commandExists("wmctrl")
	return d
}

// commandExists checks if a command is available in PATH
func (d *Detector) commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// IsAvailable checks if any supported tool is installed
func (d *Detector) IsAvailable() bool {
	return d.hasXdotool || d.hasWmctrl
}

// Name identifies the detection backend
func (d *Detector) Name() string {
	return "xdotool"
}

// GetFocusedWindow returns information about the currently focused window
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	if d.hasXdotool {
		return d.getFocusedWindowXdotool()
	}
	if d.hasWmctrl {
		return d.getFocusedWindowWmctrl()
	}
	return nil, fmt.Errorf("no detection tool available (xdotool or wmctrl required)")
}

// getFocusedWindowXdotool uses xdotool to get focused window info
func (d *Detector) getFocusedWindowXdotool() (*window.WindowInfo, error) {
	windowIDOutput, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get active window ID: %w", err)
	}

	windowID := strings.TrimSpace(string(windowIDOutput))

	windowNameOutput, err := exec.Command("xdotool", "getwindowname", windowID).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get window name: %w", err)
	}

	windowTitle := strings.TrimSpace(string(windowNameOutput))

	// Prefer WM_CLASS, it survives sandboxed apps whose PID is hidden
	appName := "Unknown"
	if classOutput, err := exec.Command("xprop", "-id", windowID, "WM_CLASS").Output(); err == nil {
		if class := parseWMClass(string(classOutput)); class != "" {
			appName = class
		}
	}

	if appName == "Unknown" {
		if pidOutput, err := exec.Command("xdotool", "getwindowpid", windowID).Output(); err == nil {
			pid := strings.TrimSpace(string(pidOutput))
			if name := processName(pid); name != "" {
				appName = name
			}
		}
	}

	return &window.WindowInfo{
		AppName:     appName,
		WindowTitle: windowTitle,
	}, nil
}

// getFocusedWindowWmctrl matches the active window ID against the
// wmctrl window list
func (d *Detector) getFocusedWindowWmctrl() (*window.WindowInfo, error) {
	activeOutput, err := exec.Command("xprop", "-root", "_NET_ACTIVE_WINDOW").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to read active window property: %w", err)
	}

	activeID, err := parseWindowID(string(activeOutput))
	if err != nil {
		return nil, err
	}

	output, err := exec.Command("wmctrl", "-l", "-p").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute wmctrl: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		// wmctrl pads window IDs with zeros, compare numerically
		id, err := strconv.ParseInt(fields[0], 0, 64)
		if err != nil || id != activeID {
			continue
		}

		appName := "Unknown"
		if name := processName(fields[2]); name != "" {
			appName = name
		}

		return &window.WindowInfo{
			AppName:     appName,
			WindowTitle: strings.Join(fields[4:], " "),
		}, nil
	}

	return nil, fmt.Errorf("could not find active window")
}

// parseWMClass extracts the class name from a WM_CLASS property dump
func parseWMClass(output string) string {
	parts := strings.Split(output, "=")
	if len(parts) < 2 {
		return ""
	}

	classInfo := strings.TrimSpace(parts[1])
	classInfo = strings.Trim(classInfo, "\"")

	classes := strings.Split(classInfo, ",")
	if len(classes) > 0 {
		className := strings.TrimSpace(classes[len(classes)-1])
		className = strings.Trim(className, "\" ")
		return className
	}

	return ""
}

// parseWindowID extracts the window ID from an xprop dump like
// _NET_ACTIVE_WINDOW(WINDOW): window id # 0x3400007
func parseWindowID(output string) (int64, error) {
	idx := strings.LastIndex(output, "#")
	if idx == -1 {
		return 0, fmt.Errorf("no window ID in %q", strings.TrimSpace(output))
	}

	id := strings.TrimSpace(output[idx+1:])
	if comma := strings.Index(id, ","); comma != -1 {
		id = id[:comma]
	}

	return strconv.ParseInt(strings.TrimSpace(id), 0, 64)
}

// processName resolves a PID string to its command name
func processName(pid string) string {
	if pid == "" || pid == "0" {
		return ""
	}
	output, err := exec.Command("ps", "-p", pid, "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// Close cleans up resources
func (d *Detector) Close() error {
	return nil
}
