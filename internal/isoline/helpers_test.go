package isoline

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// solid returns a width×height image filled with one colour.
func solid(width, height int, r, g, b uint8) *pixmap.Image {
	m := pixmap.New(width, height)
	for i := 0; i < len(m.Pix); i += 3 {
		m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
	}
	return m
}

// fill paints the rectangle [x0,x1)×[y0,y1) of m.
func fill(m *pixmap.Image, x0, y0, x1, y1 int, r, g, b uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.SetRGB(x, y, r, g, b)
		}
	}
}

// testPatterns builds a pattern set where every case has its own colours
// and a marker pixel, so stamped blocks can be told apart.
func testPatterns(step int) *Patterns {
	var p Patterns
	for code := range p {
		m := solid(step, step, uint8(code*16), uint8(255-code*16), uint8(code))
		m.SetRGB(code%step, 0, 255, 255, 255)
		p[code] = m
	}
	return &p
}

// writePatterns stores p as dir/0.ppm..dir/15.ppm.
func writePatterns(t *testing.T, dir string, p *Patterns) {
	t.Helper()
	for i, img := range p {
		if err := pixmap.WriteFile(filepath.Join(dir, strconv.Itoa(i)+".ppm"), img); err != nil {
			t.Fatal(err)
		}
	}
}

// blobs returns a deterministic image with dark discs on a bright background
// and a smooth gradient, large enough to produce every kind of cell.
func blobs(width, height int) *pixmap.Image {
	m := pixmap.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 - (x*3+y*5)%96)
			dx, dy := x-width/3, y-height/2
			if dx*dx+dy*dy < (width*width)/25 {
				v = 40
			}
			dx, dy = x-2*width/3, y-height/4
			if dx*dx+dy*dy < (height*height)/36 {
				v = 90
			}
			m.SetRGB(x, y, v, uint8(int(v)*7/8), uint8(int(v)*3/4))
		}
	}
	return m
}

func testConfig(workers int) *Config {
	cfg := DefaultConfig()
	cfg.Workers = workers
	return cfg
}
