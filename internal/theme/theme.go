package theme

import (
	"image/color"
)

// Theme defines the colours used for the editor chrome. The mask colour is
// fixed by the file format and is not themeable.
type Theme struct {
	Name string

	// Canvas
	Background  color.RGBA // Behind the image where the view extends past it
	Placeholder color.RGBA // Fill for images that failed to load
	Cursor      color.RGBA // Brush outline

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Transient messages
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded default dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{30, 30, 30, 255},
		Placeholder:       color.RGBA{255, 0, 0, 255},
		Cursor:            color.RGBA{255, 0, 0, 255},
		StatusBackground:  color.RGBA{20, 20, 20, 220},
		StatusText:        color.RGBA{230, 230, 230, 255},
		MessageBackground: color.RGBA{255, 255, 255, 230},
		MessageText:       color.RGBA{0, 0, 0, 255},
	}
}
