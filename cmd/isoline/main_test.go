package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sokinpui/isoline/internal/isoline"
)

func TestCheckArgs(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{nil, errUsage},
		{[]string{"in.ppm", "out.ppm"}, errUsage},
		{[]string{"in.ppm", "out.ppm", "4"}, nil},
		{[]string{"in.ppm", "out.ppm", "4", "extra"}, nil},
	}
	for _, tt := range tests {
		if err := checkArgs(tt.args); !errors.Is(err, tt.want) {
			t.Errorf("checkArgs(%q) = %v, want %v", tt.args, err, tt.want)
		}
	}
	if err := checkArgs(nil); err.Error() != usage {
		t.Errorf("usage message = %q, want %q", err.Error(), usage)
	}
}

func TestParseArgs(t *testing.T) {
	cfg := isoline.DefaultConfig()
	if err := parseArgs(cfg, []string{"in.ppm", "out.ppm", "12"}); err != nil {
		t.Fatal(err)
	}
	if cfg.InputPath != "in.ppm" || cfg.OutputPath != "out.ppm" || cfg.Workers != 12 {
		t.Errorf("parsed config = %+v", cfg)
	}
	if err := parseArgs(cfg, []string{"in.ppm", "out.ppm", "many"}); err == nil {
		t.Error("expected an error for a non-numeric thread count")
	}
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	if err := os.WriteFile(in, []byte("P6\n1 1\n255\n\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := isoline.DefaultConfig()
	cfg.InputPath = in
	cfg.ContourDir = dir
	cfg.Workers = 2
	if err := validateConfig(cfg); err != nil {
		t.Errorf("validateConfig = %v", err)
	}

	cfg.Workers = 0
	if err := validateConfig(cfg); err == nil {
		t.Error("expected an error for zero workers")
	}

	cfg.Workers = 2
	cfg.ContourDir = filepath.Join(dir, "contours")
	if err := validateConfig(cfg); err == nil {
		t.Error("expected an error for a missing contour directory")
	}

	cfg.ContourDir = dir
	cfg.InputPath = filepath.Join(dir, "missing.ppm")
	if err := validateConfig(cfg); err == nil {
		t.Error("expected an error for a missing input")
	}
}
