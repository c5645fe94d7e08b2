// Package platform wraps host desktop services.
package platform

import "time"

// AppName is reported to the host as the sending application.
const AppName = "maskedit"

// DefaultTimeout is how long a notification stays visible.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// Transient asks the server not to keep the notification in its history.
	Transient bool
}

func (o Options) timeout() int32 {
	if o.Timeout > 0 {
		return int32(o.Timeout / time.Millisecond)
	}
	return int32(DefaultTimeout / time.Millisecond)
}
