package isoline

import (
	"bytes"
	"math"
	"testing"

	"github.com/sokinpui/isoline/internal/pixmap"
)

func TestResampleWithinCeilingIsNoop(t *testing.T) {
	tests := []struct{ w, h int }{{16, 16}, {2048, 16}, {2048, 10}, {1, 2048}}
	for _, tt := range tests {
		src := blobs(tt.w, tt.h)
		before := append([]uint8(nil), src.Pix...)
		got := Resample(src, 2048, 2048)
		if got != src {
			t.Errorf("%dx%d: Resample allocated a new image", tt.w, tt.h)
		}
		if !bytes.Equal(got.Pix, before) {
			t.Errorf("%dx%d: Resample changed pixel values", tt.w, tt.h)
		}
	}
}

func TestResampleOutputSize(t *testing.T) {
	tests := []struct{ w, h, cw, ch int }{
		{40, 10, 32, 32},
		{10, 40, 32, 32},
		{64, 48, 16, 12},
		{33, 33, 32, 32},
		{5, 5, 1, 4},
	}
	for _, tt := range tests {
		got := Resample(blobs(tt.w, tt.h), tt.cw, tt.ch)
		if got.Width != tt.cw || got.Height != tt.ch {
			t.Errorf("%dx%d -> %dx%d ceiling: got %dx%d", tt.w, tt.h, tt.cw, tt.ch, got.Width, got.Height)
		}
		if len(got.Pix) != tt.cw*tt.ch*3 {
			t.Errorf("buffer length %d, want %d", len(got.Pix), tt.cw*tt.ch*3)
		}
	}
}

func TestCubicWeightsSumToOne(t *testing.T) {
	for _, f := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.999} {
		w := cubicWeights(f)
		sum := w[0] + w[1] + w[2] + w[3]
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights at %v sum to %v", f, sum)
		}
	}
	if w := cubicWeights(0); w != [4]float64{0, 1, 0, 0} {
		t.Errorf("weights at 0 = %v, want an identity tap", w)
	}
}

func TestSampleUniformImage(t *testing.T) {
	src := solid(9, 7, 200, 13, 77)
	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {0.5, 0.5}, {0.3, 0.9}, {1, 0}} {
		if got := Sample(src, uv[0], uv[1]); got != [3]uint8{200, 13, 77} {
			t.Errorf("Sample(%v, %v) = %v, want [200 13 77]", uv[0], uv[1], got)
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	src := blobs(50, 40)
	for _, uv := range [][2]float64{{0.11, 0.42}, {0.5, 0.5}, {0.99, 0.01}} {
		a := Sample(src, uv[0], uv[1])
		b := Sample(src, uv[0], uv[1])
		if a != b {
			t.Errorf("Sample(%v) not deterministic: %v vs %v", uv, a, b)
		}
	}
}

func TestSampleClampsOvershoot(t *testing.T) {
	// A hard edge makes the Catmull-Rom lobes overshoot both ends.
	src := solid(8, 1, 0, 0, 0)
	fill(src, 4, 0, 8, 1, 255, 255, 255)
	for x := 0; x < 64; x++ {
		px := Sample(src, float64(x)/63, 0)
		if x < 26 && px[0] != 0 {
			t.Errorf("x=%d: dark side sample %d, want 0", x, px[0])
		}
		if x > 37 && px[0] != 255 {
			t.Errorf("x=%d: bright side sample %d, want 255", x, px[0])
		}
	}
}

func TestResampleRowsMatchesWholeImage(t *testing.T) {
	src := blobs(90, 70)
	want := Resample(src, 40, 30)

	got := pixmap.New(40, 30)
	for _, r := range [][2]int{{20, 30}, {0, 7}, {7, 20}} {
		ResampleRows(got, src, r[0], r[1])
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("row-range resampling differs from whole-image resampling")
	}
}
