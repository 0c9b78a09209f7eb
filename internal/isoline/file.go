package isoline

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"os"

	"golang.org/x/image/bmp"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// ErrToleranceExceeded is returned when the output differs from the
// reference image by more than the configured tolerance.
var ErrToleranceExceeded = errors.New("output differs from reference")

// ErrSizeMismatch is returned when the output and reference images have
// different dimensions.
var ErrSizeMismatch = errors.New("output and reference sizes differ")

// loadImage opens and decodes an image in any registered format
// (ppm, bmp, png, jpeg) and converts it to a pixmap.
func loadImage(path string) (*pixmap.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	decodedImg, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	log.Printf("Decoded %s image %s.", format, path)
	return pixmap.FromImage(decodedImg), nil
}

// saveGridDump writes the occupancy grid to path as a BMP, one pixel per
// grid cell.
func saveGridDump(g *Grid, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create grid dump: %w", err)
	}
	if err := bmp.Encode(outFile, g.Image()); err != nil {
		outFile.Close()
		return fmt.Errorf("could not encode grid dump %s: %w", path, err)
	}
	return outFile.Close()
}

// compareWithReference reports the mean colour distance between out and the
// reference image and fails when it is above a non-zero tolerance.
func compareWithReference(cfg *Config, out *pixmap.Image) error {
	comparator, err := NewComparator(cfg.Metric)
	if err != nil {
		return err
	}
	ref, err := loadImage(cfg.ReferencePath)
	if err != nil {
		return fmt.Errorf("failed to load reference: %w", err)
	}

	diff := comparator.Compare(out, ref)
	if diff == math.MaxFloat64 {
		return fmt.Errorf("%w: output is %dx%d, reference is %dx%d",
			ErrSizeMismatch, out.Width, out.Height, ref.Width, ref.Height)
	}
	log.Printf("Mean %s distance to %s: %.6f", cfg.Metric, cfg.ReferencePath, diff)
	fmt.Printf("Mean %s distance to reference: %.6f\n", cfg.Metric, diff)
	if cfg.Tolerance > 0 && diff > cfg.Tolerance {
		return fmt.Errorf("%w: mean %s distance %.6f > %.6f", ErrToleranceExceeded, cfg.Metric, diff, cfg.Tolerance)
	}
	return nil
}
