package qc

import(
	"fmt"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
)

// PlotPixelHistogram histograms the pixel values of a (dark-subtracted)
// frame. A flat frame gets a single bin around its value.
func PlotPixelHistogram(pixels []float64, nbins int, title string) (*plot.Plot, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("pixel histogram: no pixels")
	}
	if nbins <= 0 {
		nbins = 100
	}

	lo, hi := floats.Min(pixels), floats.Max(pixels)
	if hi <= lo {
		lo, hi, nbins = lo-0.5, lo+0.5, 1
	}
	// Nudge the top edge so the maximum lands in the last bin, not overflow
	hi += (hi - lo) * 1e-9

	h := hbook.NewH1D(nbins, lo, hi)
	for _, v := range pixels {
		h.Fill(v, 1)
	}

	hp := hplot.New()
	hp.Title.Text = title
	hp.X.Label.Text = "Counts (dark subtracted)"
	hp.Y.Label.Text = "Pixels"

	hh := hplot.NewH1D(h)
	hh.Infos.Style = hplot.HInfoMean | hplot.HInfoStdDev
	hp.Add(hh)
	hp.Add(hplot.NewGrid())

	return hp.Plot, nil
}
