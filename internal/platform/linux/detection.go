//go:build linux

// Package linux provides the Linux pointer backends.
package linux

import (
	"os"
	"strings"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

// DetectDisplayServer detects whether the session runs on X11 or Wayland.
func DetectDisplayServer() string {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case DisplayServerWayland:
		return DisplayServerWayland
	case DisplayServerX11:
		return DisplayServerX11
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}
