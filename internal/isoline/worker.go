package isoline

import (
	"sync"
	"sync/atomic"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// task describes one worker's share of a run. It is built before the worker
// starts and never modified afterwards.
type task struct {
	id      int
	workers int

	// src is the decoded image and dst the image the grid is built on and
	// stamped into. They are the same image when no resampling is needed.
	src *pixmap.Image
	dst *pixmap.Image

	grid     *Grid
	patterns *Patterns
	step     int
	sigma    int

	barrier   *Barrier
	processed *atomic.Int64
}

// worker runs the resample, classify and march phases over its static slice
// of each phase, meeting the other workers at the barrier between phases.
// Whether the resample phase runs depends only on the shared images, so
// either every worker waits at the first barrier or none does.
func worker(wg *sync.WaitGroup, t task) {
	defer wg.Done()

	if t.src != t.dst {
		start, end := span(t.id, t.workers, t.dst.Height)
		ResampleRows(t.dst, t.src, start, end)
		t.barrier.Wait()
	}

	start, end := span(t.id, t.workers, t.grid.rows-1)
	t.grid.buildRows(t.dst, t.step, t.sigma, start, end)
	colStart, colEnd := span(t.id, t.workers, t.grid.cols-1)
	t.grid.buildBorderRow(t.dst, t.step, t.sigma, colStart, colEnd)
	if t.id == t.workers-1 {
		t.grid.closeCorner()
	}
	t.barrier.Wait()

	for i := start; i < end; i++ {
		marchRows(t.dst, t.grid, t.patterns, t.step, i, i+1)
		t.processed.Add(1)
	}
}
