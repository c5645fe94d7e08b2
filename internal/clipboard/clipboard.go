// Package clipboard publishes exported masks and paths to the desktop
// clipboard.
package clipboard

import "os"

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
