//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

func queryMonitors() ([]Monitor, error) { return nil, ErrNoMonitors }
