package plot_test

import (
	"errors"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/plot"
)

var _ calc.ImageDrawer = (*plot.PNG)(nil)

func TestPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	s := plot.NewPNG(path, 0, 0)
	if s.Path() != path {
		t.Errorf("wrong path %q", s.Path())
	}
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, math.Inf(1), 9}
	if err := s.DrawScatterPlot("Plot", "x", "output", xs, ys); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawScatterPlot("Plot", "t", "output", xs, xs); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Errorf("surface has %d plots, want 2", s.Len())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatalf("plot isn't a PNG: %v", err)
	}
	if math.Abs(float64(cfg.Width-640)) > 1 || math.Abs(float64(cfg.Height-480)) > 1 {
		t.Errorf("plot is %dx%d, want 640x480", cfg.Width, cfg.Height)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("surface has %d plots after clear", s.Len())
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("plot file remains after clear: %v", err)
	}
	// Clearing an empty surface is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second clear failed: %v", err)
	}
}

func TestPNGMismatch(t *testing.T) {
	s := plot.NewPNG(filepath.Join(t.TempDir(), "plot.png"), 100, 100)
	if err := s.DrawScatterPlot("Plot", "x", "y", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("mismatched coordinates drew")
	}
	if s.Len() != 0 {
		t.Errorf("mismatched coordinates added a plot")
	}
}

func TestPNGCalculator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	s := plot.NewPNG(path, 320, 240)
	c, err := calc.New(calc.WithDrawer(s))
	if err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{"plot(x ^ 2, x, -1, 1, 0.1)", "plot(1 / x, x, 0, 1, 0.25)"} {
		if _, err := c.Evaluate(src); err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
	}
	if s.Len() != 2 {
		t.Errorf("surface has %d plots, want 2", s.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("no plot file: %v", err)
	}
	if _, err := c.Evaluate("clear()"); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("clear left %d plots", s.Len())
	}
}
