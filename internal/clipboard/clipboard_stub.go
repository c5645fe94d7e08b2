//go:build !(linux || freebsd || openbsd || netbsd || dragonfly) || !cgo

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

// WritePNG reports that the clipboard is unavailable in this build.
func WritePNG([]byte) error { return errUnsupported }

// WriteText reports that the clipboard is unavailable in this build.
func WriteText(string) error { return errUnsupported }
