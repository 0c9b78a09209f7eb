package isoline

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// ColorComparator averages a per-pixel colour distance over two images.
type ColorComparator struct {
	Distance func(c1, c2 colorful.Color) float64
}

// Compare returns the mean distance between corresponding pixels of imgA and
// imgB, or math.MaxFloat64 when their sizes differ.
func (c *ColorComparator) Compare(imgA, imgB image.Image) float64 {
	a := pixmap.FromImage(imgA)
	b := pixmap.FromImage(imgB)
	if !a.SameSize(b) {
		return math.MaxFloat64
	}

	pixelCount := float64(a.Width * a.Height)
	if pixelCount == 0 {
		return 0
	}

	var totalDifference float64
	for offset := 0; offset < len(a.Pix); offset += 3 {
		c1 := colorful.Color{
			R: float64(a.Pix[offset+0]) / 255.0,
			G: float64(a.Pix[offset+1]) / 255.0,
			B: float64(a.Pix[offset+2]) / 255.0,
		}
		c2 := colorful.Color{
			R: float64(b.Pix[offset+0]) / 255.0,
			G: float64(b.Pix[offset+1]) / 255.0,
			B: float64(b.Pix[offset+2]) / 255.0,
		}
		totalDifference += c.Distance(c1, c2)
	}

	return totalDifference / pixelCount
}
