// Package pixmap holds the 8-bit RGB raster used throughout isoline and the
// binary PPM codec that reads and writes it.
package pixmap

import (
	"image"
	"image/color"
)

// Image is an 8-bit RGB raster stored row-major, three bytes per pixel and
// no padding between rows.
//
// Image implements image.Image and draw.Image so it can be passed to the
// standard encoders and colour comparators without a copy.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a black image of the given size.
func New(width, height int) *Image {
	if width < 0 || height < 0 {
		panic("pixmap: negative image size")
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Stride is the number of bytes between vertically adjacent pixels.
func (m *Image) Stride() int { return m.Width * 3 }

// Offset returns the index in Pix of the red channel of pixel (x, y).
func (m *Image) Offset(x, y int) int { return (y*m.Width + x) * 3 }

// RGB returns the channels of pixel (x, y). The coordinates must be in range.
func (m *Image) RGB(x, y int) (r, g, b uint8) {
	i := m.Offset(x, y)
	p := m.Pix[i : i+3 : i+3]
	return p[0], p[1], p[2]
}

// SetRGB overwrites pixel (x, y). The coordinates must be in range.
func (m *Image) SetRGB(x, y int, r, g, b uint8) {
	i := m.Offset(x, y)
	p := m.Pix[i : i+3 : i+3]
	p[0], p[1], p[2] = r, g, b
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image. Pixels outside the bounds are transparent black.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return color.RGBA{}
	}
	r, g, b := m.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Set implements draw.Image. Alpha is discarded.
func (m *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	m.SetRGB(x, y, rgba.R, rgba.G, rgba.B)
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	c := &Image{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// SameSize reports whether m and o have identical dimensions.
func (m *Image) SameSize(o *Image) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// FromImage converts any image to an Image. An *Image is returned as is.
func FromImage(src image.Image) *Image {
	if m, ok := src.(*Image); ok {
		return m
	}
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy())
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			dst.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
