package isoline

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ImageComparator defines the interface for comparing two images.
type ImageComparator interface {
	Compare(imgA, imgB image.Image) float64
}

// NewComparator returns a comparator for the named colour distance metric.
func NewComparator(metric string) (ImageComparator, error) {
	switch strings.ToLower(metric) {
	case "ciede2000":
		return &ColorComparator{Distance: colorful.Color.DistanceCIEDE2000}, nil
	case "cie76":
		return &ColorComparator{Distance: colorful.Color.DistanceCIE76}, nil
	case "rgb":
		return &ColorComparator{Distance: colorful.Color.DistanceRgb}, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %s", metric)
	}
}
