package pipeline

import(
	"context"
	"io"
	"log"

	"github.com/abworrall/arclamp/pkg/qc"
	"github.com/abworrall/arclamp/pkg/specio"
	"github.com/abworrall/arclamp/pkg/spectro"
)

type FluxRequest struct {
	Input    string // calibrated 1D spectrum
	Table    string // output CSV
	LineList string // CSV with line_start,line_end
	Plot     string
}

// MeasureFluxes integrates the spectrum over each line window, and writes
// the per-fiber, per-second fluxes in line list order.
func MeasureFluxes(ctx context.Context, cfg Config, req FluxRequest) ([]spectro.LineMeasurement, error) {
	ld := cfg.loader()
	s, err := ld.LoadSpectrum(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	lines, err := ld.LoadLineList(ctx, req.LineList)
	if err != nil {
		return nil, err
	}
	log.Printf("Measuring %d lines in %s\n", len(lines), s)

	ms, err := spectro.MeasureLines(s, lines, cfg.FiberCount)
	if err != nil {
		return nil, err
	}
	if cfg.Verbosity > 1 {
		for _, m := range ms {
			log.Printf("  %-8s [%9.3f, %9.3f] px %4d: %d pixels, raw %g, flux %g\n",
				m.Name(), m.Start, m.End, m.Pixel, m.NPixels, m.RawFlux, m.Flux)
		}
	}

	err = cfg.write(ctx, req.Table, func(w io.Writer) error { return specio.WriteMeasurements(w, ms) })
	if err != nil {
		return ms, err
	}

	wl, err := s.Wavelengths()
	if err != nil {
		return ms, err
	}
	p, err := qc.PlotLineWindows(wl, s.Data, lines, s.Lamp.String())
	if err != nil {
		return ms, err
	}
	return ms, cfg.writePlot(ctx, req.Plot, p)
}
