package isoline

import (
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// NeedsResample reports whether src exceeds the width×height ceiling in
// either dimension. Images within the ceiling are never upscaled.
func NeedsResample(src *pixmap.Image, width, height int) bool {
	return src.Width > width || src.Height > height
}

// Resample returns src itself when it already fits within width×height and
// a newly allocated width×height bicubic resampling of it otherwise.
func Resample(src *pixmap.Image, width, height int) *pixmap.Image {
	if !NeedsResample(src, width, height) {
		return src
	}
	dst := pixmap.New(width, height)
	ResampleRows(dst, src, 0, height)
	return dst
}

// ResampleRows fills rows [start, end) of dst with bicubic samples of src.
// Every destination pixel depends only on src, so disjoint row ranges can be
// filled concurrently.
func ResampleRows(dst, src *pixmap.Image, start, end int) {
	stride := dst.Stride()
	for y := start; y < end; y++ {
		v := normalize(y, dst.Height)
		row := dst.Pix[y*stride : (y+1)*stride]
		for x := 0; x < dst.Width; x++ {
			px := Sample(src, normalize(x, dst.Width), v)
			copy(row[x*3:x*3+3], px[:])
		}
	}
}

// normalize maps index i of an extent of n samples onto [0, 1].
func normalize(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Sample interpolates src at the normalized coordinates (u, v), where (0, 0)
// is the top-left and (1, 1) the bottom-right of the image. The 4×4 source
// neighbourhood is clamped at the edges and weighted with a separable
// Catmull-Rom kernel, rows first. src must not be empty.
func Sample(src *pixmap.Image, u, v float64) [3]uint8 {
	sx := u*float64(src.Width) - 0.5
	sy := v*float64(src.Height) - 0.5
	fx, fy := math.Floor(sx), math.Floor(sy)
	x0, y0 := int(fx), int(fy)
	wx := cubicWeights(sx - fx)
	wy := cubicWeights(sy - fy)

	var acc [3]float64
	for m := 0; m < 4; m++ {
		yy := clamp(y0-1+m, 0, src.Height-1)
		var row [3]float64
		for n := 0; n < 4; n++ {
			xx := clamp(x0-1+n, 0, src.Width-1)
			r, g, b := src.RGB(xx, yy)
			row[0] += wx[n] * float64(r)
			row[1] += wx[n] * float64(g)
			row[2] += wx[n] * float64(b)
		}
		for c := range acc {
			acc[c] += wy[m] * row[c]
		}
	}

	var out [3]uint8
	for c, a := range acc {
		out[c] = toChannel(a)
	}
	return out
}

// cubicWeights returns the kernel weights of the four taps at offsets -1, 0,
// +1 and +2 from a sample sitting t ∈ [0, 1) past the second tap.
func cubicWeights(t float64) [4]float64 {
	k := xdraw.CatmullRom.At
	return [4]float64{k(1 + t), k(t), k(1 - t), k(2 - t)}
}

func toChannel(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
