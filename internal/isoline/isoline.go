// Package isoline extracts contour lines from an image with a parallel
// marching squares pipeline: optional bicubic downscale, threshold
// classification onto a coarse grid, and pattern stamping per grid cell.
package isoline

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/isoline/internal/pixmap"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Result is the outcome of one pipeline run.
type Result struct {
	// Image holds the contours. It is the input image, modified in place,
	// unless the input was resampled.
	Image     *pixmap.Image
	Grid      *Grid
	Resampled bool
	Workers   int
}

// Process runs the pipeline over img on cfg's worker pool and returns once
// every worker has finished.
func Process(img *pixmap.Image, patterns *Patterns, cfg *Config) (*Result, error) {
	return process(img, patterns, cfg, new(atomic.Int64))
}

func process(img *pixmap.Image, patterns *Patterns, cfg *Config, processed *atomic.Int64) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := patterns.Validate(cfg.Step); err != nil {
		return nil, err
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, ErrEmptyImage
	}

	dst := img
	if cfg.Resample && NeedsResample(img, cfg.CeilingWidth, cfg.CeilingHeight) {
		dst = pixmap.New(cfg.CeilingWidth, cfg.CeilingHeight)
		log.Printf("Resampling %dx%d image to %dx%d.", img.Width, img.Height, dst.Width, dst.Height)
	}
	grid := NewGrid(dst.Width, dst.Height, cfg.Step)

	workers := cfg.workerCount()
	barrier := NewBarrier(workers)
	log.Printf("Building %dx%d grid with step %d on %d workers.", grid.Rows(), grid.Cols(), cfg.Step, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(&wg, task{
			id:        i,
			workers:   workers,
			src:       img,
			dst:       dst,
			grid:      grid,
			patterns:  patterns,
			step:      cfg.Step,
			sigma:     cfg.Sigma,
			barrier:   barrier,
			processed: processed,
		})
	}
	wg.Wait()

	return &Result{
		Image:     dst,
		Grid:      grid,
		Resampled: dst != img,
		Workers:   workers,
	}, nil
}

// Run is the main application logic.
func Run(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	workers := cfg.workerCount()
	log.Printf("Starting contour extraction of %s with %d workers.", cfg.InputPath, workers)
	runtime.GOMAXPROCS(workers)

	img, err := pixmap.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	log.Printf("Loaded %dx%d image.", img.Width, img.Height)

	patterns, err := LoadPatterns(cfg.ContourDir, cfg.Step)
	if err != nil {
		return err
	}

	height := img.Height
	if cfg.Resample && NeedsResample(img, cfg.CeilingWidth, cfg.CeilingHeight) {
		height = cfg.CeilingHeight
	}
	total := int64(height / cfg.Step)

	var processed atomic.Int64
	startTime := time.Now()
	stop := func() {}
	if !cfg.Quiet {
		stop = showProgress(&processed, total)
	}
	res, err := process(img, patterns, cfg, &processed)
	stop()
	if err != nil {
		return err
	}
	duration := time.Since(startTime)
	log.Printf("Contour extraction took %s.", duration)

	if cfg.ReferencePath != "" {
		if err := compareWithReference(cfg, res.Image); err != nil {
			return err
		}
	}

	if err := pixmap.WriteFile(cfg.OutputPath, res.Image); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("Wrote %dx%d image to %s.", res.Image.Width, res.Image.Height, cfg.OutputPath)

	if cfg.GridDumpPath != "" {
		if err := saveGridDump(res.Grid, cfg.GridDumpPath); err != nil {
			return err
		}
		log.Printf("Wrote grid dump to %s.", cfg.GridDumpPath)
	}

	durationStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	speedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	cells := float64(res.Grid.Rows()-1) * float64(res.Grid.Cols()-1)
	fmt.Printf("Total processing time: %s\n", durationStyle.Render(fmt.Sprintf("%.4fs", duration.Seconds())))
	fmt.Printf("Cells per second: %s\n", speedStyle.Render(fmt.Sprintf("%.2f", cells/duration.Seconds())))

	return nil
}

// showProgress renders a spinner with the number of marched grid rows until
// the returned stop function is called.
func showProgress(processed *atomic.Int64, total int64) (stop func()) {
	var wg sync.WaitGroup
	done := make(chan struct{})
	startTime := time.Now()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := spinner.New()
		s.Spinner = spinner.Dot
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				fmt.Printf("\r%s Marching complete. %d/%d rows processed.\n", "✓", processed.Load(), total)
				return
			case <-ticker.C:
				s, _ = s.Update(spinner.TickMsg{})
				n := processed.Load()
				var rps float64
				if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
					rps = float64(n) / elapsed
				}
				fmt.Printf("\r%s Marching rows %d/%d... (%.2f rows/s)", s.View(), n, total, rps)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}
