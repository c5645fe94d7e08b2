// Package session pairs source images with their masks and tracks which pair
// is being edited.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoPairs is returned when a scan finds no image with a usable mask.
var ErrNoPairs = errors.New("no matching image/mask pairs found")

// MaskExt is the extension used for stored masks.
const MaskExt = ".png"

// Extensions lists the accepted source image extensions (lower case).
var Extensions = map[string]bool{
	".tif":  true,
	".tiff": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// Pair links a source image to its annotation mask and to the path edits are
// written to. Mask is empty when only a previously saved output exists.
type Pair struct {
	Image  string
	Mask   string
	Output string
}

// Name returns the source image file name.
func (p Pair) Name() string { return filepath.Base(p.Image) }

// Scan lists imageDir and returns one Pair per source image that has a
// same-stem PNG mask in maskDir or an already saved mask in outputDir. The
// result is ordered by file name.
func Scan(imageDir, maskDir, outputDir string) ([]Pair, error) {
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", imageDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if Extensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var pairs []Pair
	for _, name := range names {
		maskName := strings.TrimSuffix(name, filepath.Ext(name)) + MaskExt
		p := Pair{
			Image:  filepath.Join(imageDir, name),
			Output: filepath.Join(outputDir, maskName),
		}
		if candidate := filepath.Join(maskDir, maskName); isFile(candidate) {
			p.Mask = candidate
		}
		if p.Mask == "" && !isFile(p.Output) {
			continue
		}
		pairs = append(pairs, p)
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	return pairs, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Session is an ordered list of pairs with a current position.
type Session struct {
	pairs []Pair
	index int
}

// New creates a Session positioned at the first pair.
func New(pairs []Pair) (*Session, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return &Session{pairs: cp}, nil
}

// Len returns the number of pairs.
func (s *Session) Len() int { return len(s.pairs) }

// Index returns the current position.
func (s *Session) Index() int { return s.index }

// Current returns the pair at the current position.
func (s *Session) Current() Pair { return s.pairs[s.index] }

// Pairs returns a copy of the ordered pairs.
func (s *Session) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Next moves forward one pair. It reports false when already at the end.
func (s *Session) Next() bool { return s.SetIndex(s.index + 1) }

// Previous moves back one pair. It reports false when already at the start.
func (s *Session) Previous() bool { return s.SetIndex(s.index - 1) }

// SetIndex clamps i into range and reports whether the position changed.
func (s *Session) SetIndex(i int) bool {
	if i < 0 {
		i = 0
	}
	if i >= len(s.pairs) {
		i = len(s.pairs) - 1
	}
	if i == s.index {
		return false
	}
	s.index = i
	return true
}
