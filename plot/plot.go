// Package plot provides a drawing surface for calculator plots that renders
// to a PNG file.
package plot

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	"fortio.org/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// PNG is a drawing surface that accumulates scatter plots and writes them all
// to one image file each time a plot is drawn. Clearing the surface forgets
// the plots and removes the file.
type PNG struct {
	mu     sync.Mutex
	path   string
	width  vg.Length
	height vg.Length
	series []series
}

type series struct {
	title  string
	xLabel string
	yLabel string
	pts    plotter.XYs
}

// NewPNG creates a surface writing to path with the given size in pixels.
// Sizes that are not positive default to 640x480.
func NewPNG(path string, width, height int) *PNG {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	return &PNG{
		path:   path,
		width:  vg.Length(width) * vg.Inch / vgimg.DefaultDPI,
		height: vg.Length(height) * vg.Inch / vgimg.DefaultDPI,
	}
}

// Path returns the file the surface writes to.
func (s *PNG) Path() string {
	return s.path
}

// Len returns the number of plots drawn since the last clear.
func (s *PNG) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.series)
}

// Clear forgets all plots and removes the image file.
func (s *PNG) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = s.series[:0]
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing plot: %w", err)
	}
	return nil
}

// DrawScatterPlot adds a series of points and renders every series drawn
// since the last clear. Points with infinite or NaN coordinates are skipped.
func (s *PNG) DrawScatterPlot(title, xLabel, yLabel string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("scatter plot has %d x values but %d y values", len(xs), len(ys))
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i, x := range xs {
		y := ys[i]
		if !finite(x) || !finite(y) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	log.LogVf("scatter plot %q with %d of %d points", title, len(pts), len(xs))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = append(s.series, series{title: title, xLabel: xLabel, yLabel: yLabel, pts: pts})
	return s.render()
}

func (s *PNG) render() error {
	p := plot.New()
	last := s.series[len(s.series)-1]
	p.Title.Text = last.title
	p.X.Label.Text = last.xLabel
	p.Y.Label.Text = last.yLabel
	for i, sr := range s.series {
		if len(sr.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(sr.pts)
		if err != nil {
			return fmt.Errorf("scatter plot %d: %w", i+1, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(sc)
		if len(s.series) > 1 {
			p.Legend.Add(sr.xLabel+" "+fmt.Sprint(i+1), sc)
		}
	}
	if err := p.Save(s.width, s.height, s.path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
