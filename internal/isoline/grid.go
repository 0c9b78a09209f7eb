package isoline

import (
	"image"
	"image/color"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// Grid is the binary occupancy matrix sampled from an image every step
// pixels. Row i corresponds to image row i·step and column j to image
// column j·step. The extra last row and column hold samples taken from the
// bottom and right image edges so that every interior cell has four corners.
//
// Cells live in one flat row-major buffer.
type Grid struct {
	rows  int
	cols  int
	cells []uint8
}

// NewGrid allocates a zeroed grid for a width×height image sampled every
// step pixels: height/step+1 rows by width/step+1 columns.
func NewGrid(width, height, step int) *Grid {
	rows, cols := height/step+1, width/step+1
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]uint8, rows*cols),
	}
}

// Rows returns the number of grid rows, border row included.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns, border column included.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell value at row i, column j.
func (g *Grid) At(i, j int) uint8 { return g.cells[i*g.cols+j] }

func (g *Grid) set(i, j int, v uint8) { g.cells[i*g.cols+j] = v }

// Classify maps a pixel to 1 ("inside") when the integer mean of its
// channels is not greater than sigma, and to 0 otherwise.
func Classify(r, g, b uint8, sigma int) uint8 {
	if (int(r)+int(g)+int(b))/3 > sigma {
		return 0
	}
	return 1
}

func classifyAt(img *pixmap.Image, x, y, sigma int) uint8 {
	r, g, b := img.RGB(x, y)
	return Classify(r, g, b, sigma)
}

// buildRows classifies interior rows [start, end), including each row's
// border cell in the last column, which samples the right image edge.
func (g *Grid) buildRows(img *pixmap.Image, step, sigma, start, end int) {
	last := g.cols - 1
	for i := start; i < end; i++ {
		y := i * step
		for j := 0; j < last; j++ {
			g.set(i, j, classifyAt(img, j*step, y, sigma))
		}
		g.set(i, last, classifyAt(img, img.Width-1, y, sigma))
	}
}

// buildBorderRow classifies columns [start, end) of the last grid row from
// the bottom image edge.
func (g *Grid) buildBorderRow(img *pixmap.Image, step, sigma, start, end int) {
	last := g.rows - 1
	for j := start; j < end; j++ {
		g.set(last, j, classifyAt(img, j*step, img.Height-1, sigma))
	}
}

// closeCorner pins the bottom-right border cell to 0.
func (g *Grid) closeCorner() {
	g.set(g.rows-1, g.cols-1, 0)
}

// BuildGrid samples img into a new grid on the calling goroutine.
func BuildGrid(img *pixmap.Image, step, sigma int) *Grid {
	g := NewGrid(img.Width, img.Height, step)
	g.buildRows(img, step, sigma, 0, g.rows-1)
	g.buildBorderRow(img, step, sigma, 0, g.cols-1)
	g.closeCorner()
	return g
}

// Image renders the grid one pixel per cell, inside cells black and
// outside cells white.
func (g *Grid) Image() *image.Gray {
	m := image.NewGray(image.Rect(0, 0, g.cols, g.rows))
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			v := color.Gray{Y: 0xff}
			if g.At(i, j) == 1 {
				v.Y = 0
			}
			m.SetGray(j, i, v)
		}
	}
	return m
}
