package isoline

import (
	"errors"
	"fmt"
)

// Defaults used by DefaultConfig.
const (
	DefaultStep          = 8
	DefaultSigma         = 200
	DefaultCeilingWidth  = 2048
	DefaultCeilingHeight = 2048
	DefaultContourDir    = "./contours"
	DefaultMetric        = "ciede2000"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the configuration parameters for a run,
// parsed from command-line flags.
type Config struct {
	InputPath  string
	OutputPath string
	ContourDir string

	// Workers is the requested worker count. MaxWorkers caps it when > 0.
	Workers    int
	MaxWorkers int

	Step          int
	Sigma         int
	CeilingWidth  int
	CeilingHeight int
	// Resample enables the bicubic downscale phase for images larger than
	// the ceiling. When false the grid is built on the source image directly.
	Resample bool

	GridDumpPath  string
	ReferencePath string
	Metric        string
	Tolerance     float64

	Quiet bool
}

// DefaultConfig returns a Config with the stock step, threshold and
// resample ceiling and a single worker.
func DefaultConfig() *Config {
	return &Config{
		ContourDir:    DefaultContourDir,
		Workers:       1,
		Step:          DefaultStep,
		Sigma:         DefaultSigma,
		CeilingWidth:  DefaultCeilingWidth,
		CeilingHeight: DefaultCeilingHeight,
		Resample:      true,
		Metric:        DefaultMetric,
	}
}

// Validate checks the numeric parameters. File paths are checked by the caller.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxWorkers < 0:
		return fmt.Errorf("%w: max workers must not be negative", ErrInvalidConfig)
	case c.Step < 1:
		return fmt.Errorf("%w: step must be a positive integer, got %d", ErrInvalidConfig, c.Step)
	case c.Sigma < 0 || c.Sigma > 255:
		return fmt.Errorf("%w: sigma must be within [0, 255], got %d", ErrInvalidConfig, c.Sigma)
	case c.Resample && (c.CeilingWidth < 1 || c.CeilingHeight < 1):
		return fmt.Errorf("%w: resample ceiling must be positive, got %dx%d", ErrInvalidConfig, c.CeilingWidth, c.CeilingHeight)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidConfig)
	}
	if c.ReferencePath != "" {
		if _, err := NewComparator(c.Metric); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// workerCount is the number of workers a run actually spawns.
func (c *Config) workerCount() int {
	if c.MaxWorkers > 0 && c.Workers > c.MaxWorkers {
		return c.MaxWorkers
	}
	return c.Workers
}
