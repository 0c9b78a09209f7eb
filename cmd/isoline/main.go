package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sokinpui/isoline/internal/isoline"
	"github.com/sokinpui/isoline/internal/logger"
	"github.com/spf13/pflag"
)

const usage = "Usage: isoline [flags] <in_file> <out_file> <P>\n"

// errUsage is returned by checkArgs; its message is the usage line.
var errUsage = errors.New(usage)

func main() {
	cfg, logPath := parseFlags()
	if err := checkArgs(pflag.Args()); err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := logger.Init(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err = parseArgs(cfg, pflag.Args()); err == nil {
		err = validateConfig(cfg)
	}
	if err != nil {
		log.Printf("Configuration error: %v", err)
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}

	if err = isoline.Run(cfg); err != nil {
		log.Printf("Application error: %v", err)
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}

// parseFlags defines and parses command-line flags, returning them
// in a Config struct along with the log file path.
func parseFlags() (*isoline.Config, string) {
	cfg := isoline.DefaultConfig()
	var noResample bool
	var logPath string

	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.StringVarP(&cfg.ContourDir, "contours", "c", cfg.ContourDir, "Directory holding the contour patterns 0.ppm..15.ppm.")
	pflag.IntVarP(&cfg.Step, "step", "s", cfg.Step, "Grid step in pixels; also the side of each contour pattern.")
	pflag.IntVar(&cfg.Sigma, "sigma", cfg.Sigma, "Brightness threshold; samples at or below it are inside the contour.")
	pflag.IntVar(&cfg.CeilingWidth, "ceiling-width", cfg.CeilingWidth, "Images wider than this are resampled down to it.")
	pflag.IntVar(&cfg.CeilingHeight, "ceiling-height", cfg.CeilingHeight, "Images taller than this are resampled down to it.")
	pflag.IntVar(&cfg.MaxWorkers, "max-workers", cfg.MaxWorkers, "Upper bound on the worker count (0 for no bound).")
	pflag.BoolVar(&noResample, "no-resample", false, "Build the grid on the source image even when it exceeds the ceiling.")
	pflag.StringVar(&cfg.GridDumpPath, "grid-dump", "", "Write the occupancy grid to this BMP file.")
	pflag.StringVarP(&cfg.ReferencePath, "reference", "r", "", "Compare the output against this image (ppm, bmp, png or jpeg).")
	pflag.StringVar(&cfg.Metric, "metric", cfg.Metric, "Colour distance used with --reference (ciede2000, cie76, rgb).")
	pflag.Float64Var(&cfg.Tolerance, "tolerance", 0, "Fail when the mean distance to the reference exceeds this (0 only reports).")
	pflag.StringVar(&logPath, "log-file", "isoline.log", "Append logs to this file (empty to disable).")
	pflag.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Do not show the progress spinner.")

	pflag.Parse()
	cfg.Resample = !noResample
	return cfg, logPath
}

// checkArgs reports errUsage unless the input, output and worker count
// positional arguments are all present.
func checkArgs(args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	return nil
}

// parseArgs fills the positional input, output and worker count arguments.
func parseArgs(cfg *isoline.Config, args []string) error {
	cfg.InputPath = args[0]
	cfg.OutputPath = args[1]
	workers, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("thread count must be an integer: %q", args[2])
	}
	cfg.Workers = workers
	return nil
}

// validateConfig checks if the provided configuration is valid.
func validateConfig(cfg *isoline.Config) error {
	if _, err := os.Stat(cfg.InputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputPath)
	}
	if info, err := os.Stat(cfg.ContourDir); err != nil || !info.IsDir() {
		return fmt.Errorf("contour directory does not exist: %s", cfg.ContourDir)
	}
	return cfg.Validate()
}
