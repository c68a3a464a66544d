package qc

import(
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the size of a rendered plot.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

func SizeInInches(w, h float64) Size {
	return Size{Width: vg.Length(w) * vg.Inch, Height: vg.Length(h) * vg.Inch}
}

var DefaultSize = SizeInInches(6.4, 4.8)

// FormatFor picks the plot encoding from a filename extension.
func FormatFor(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
		return ext
	}
	return "png"
}

// Write renders p into w.
func Write(w io.Writer, p *plot.Plot, format string, sz Size) error {
	wt, err := p.WriterTo(sz.Width, sz.Height, format)
	if err != nil {
		return fmt.Errorf("plot render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot write: %w", err)
	}
	return nil
}

// trace is the black spectrum line every plot here draws.
func trace(xs, ys []float64) (*plotter.Line, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("trace: %d x values, %d y values", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = color.Black
	l.LineStyle.Width = vg.Points(0.75)
	return l, nil
}

func pixelAxis(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// PlotCounts is the summed spectrum against pixel number.
func PlotCounts(counts []float64, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Pixel"
	p.Y.Label.Text = "Counts"

	l, err := trace(pixelAxis(len(counts)), counts)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}

// PlotCalibrated is the spectrum against wavelength.
func PlotCalibrated(wavelength, counts []float64, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Wavelength (Angstrom)"
	p.Y.Label.Text = "Counts"

	l, err := trace(wavelength, counts)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}
