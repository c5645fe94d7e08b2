package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MASKEDIT_"

// ApplyEnv overrides fields from MASKEDIT_* variables found through lookup.
// A nil lookup uses os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	strs := map[string]*string{
		"IMAGES": &c.Images,
		"MASKS":  &c.Masks,
		"OUTPUT": &c.Output,
		"THEME":  &c.Theme,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	ints := map[string]*int{
		"PIXEL_BUDGET":  &c.PixelBudget,
		"BRUSH_SIZE":    &c.Brush.Size,
		"HISTORY_LIMIT": &c.History.Limit,
		"FPS":           &c.View.FPS,
	}
	for name, dst := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}
	if v, ok := lookup(EnvPrefix + "WINDOW"); ok && v != "" {
		w, h, err := ParseSize(v)
		if err != nil {
			return fmt.Errorf("%sWINDOW: %w", EnvPrefix, err)
		}
		c.View.Width, c.View.Height = w, h
	}
	return nil
}
