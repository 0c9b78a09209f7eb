package isoline

import "github.com/sokinpui/isoline/internal/pixmap"

// CellCode returns the marching squares case of the cell whose top-left
// corner is grid point (i, j): top-left·8 + top-right·4 + bottom-right·2 +
// bottom-left·1.
func (g *Grid) CellCode(i, j int) uint8 {
	return 8*g.At(i, j) + 4*g.At(i, j+1) + 2*g.At(i+1, j+1) + g.At(i+1, j)
}

// Stamp copies pattern into img with the pattern's top-left pixel at (x, y).
// The pattern must fit inside img.
func Stamp(img, pattern *pixmap.Image, x, y int) {
	n := pattern.Stride()
	for r := 0; r < pattern.Height; r++ {
		dst := img.Offset(x, y+r)
		copy(img.Pix[dst:dst+n], pattern.Pix[r*n:(r+1)*n])
	}
}

// marchRows stamps every cell of grid rows [start, end).
func marchRows(img *pixmap.Image, g *Grid, p *Patterns, step, start, end int) {
	for i := start; i < end; i++ {
		for j := 0; j < g.cols-1; j++ {
			Stamp(img, p[g.CellCode(i, j)], j*step, i*step)
		}
	}
}

// March stamps the pattern of every grid cell into img on the calling
// goroutine. Marching the same grid again leaves img unchanged.
func March(img *pixmap.Image, g *Grid, p *Patterns, step int) {
	marchRows(img, g, p, step, 0, g.rows-1)
}
