package isoline

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// PatternCount is the number of marching squares cases.
const PatternCount = 16

// ErrPatternSize is returned when a contour pattern is not step×step pixels.
var ErrPatternSize = errors.New("contour pattern has the wrong size")

// Patterns maps each marching squares case to the image stamped for it.
// A loaded set is read-only and shared by all workers.
type Patterns [PatternCount]*pixmap.Image

// LoadPatterns reads dir/0.ppm through dir/15.ppm and checks that each one
// is step×step pixels.
func LoadPatterns(dir string, step int) (*Patterns, error) {
	var p Patterns
	for i := range p {
		path := filepath.Join(dir, strconv.Itoa(i)+".ppm")
		img, err := pixmap.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load contour pattern %d: %w", i, err)
		}
		p[i] = img
	}
	if err := p.Validate(step); err != nil {
		return nil, err
	}
	log.Printf("Loaded %d contour patterns from %s.", PatternCount, dir)
	return &p, nil
}

// Validate checks that every pattern is present and step×step pixels.
func (p *Patterns) Validate(step int) error {
	for i, img := range p {
		if img == nil {
			return fmt.Errorf("%w: pattern %d is missing", ErrPatternSize, i)
		}
		if img.Width != step || img.Height != step {
			return fmt.Errorf("%w: pattern %d is %dx%d, want %dx%d",
				ErrPatternSize, i, img.Width, img.Height, step, step)
		}
	}
	return nil
}
