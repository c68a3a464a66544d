package pipeline

import(
	"context"
	"io"
	"log"

	"gonum.org/v1/plot"

	"github.com/abworrall/arclamp/pkg/qc"
	"github.com/abworrall/arclamp/pkg/specio"
	"github.com/abworrall/arclamp/pkg/spectro"
	"github.com/abworrall/arclamp/pkg/store"
)

func (c Config)loader() specio.Loader { return specio.Loader{Credentials: c.GCSCredentials} }

func (c Config)write(ctx context.Context, loc string, fn func(io.Writer) error) error {
	if err := store.WriteTo(ctx, loc, c.GCSCredentials, fn); err != nil {
		return err
	}
	log.Printf("Wrote '%s'\n", loc)
	return nil
}

func (c Config)writeSpectrum(ctx context.Context, loc string, s spectro.Spectrum) error {
	return c.write(ctx, loc, func(w io.Writer) error { return specio.WriteSpectrum(w, s) })
}

// writePlot renders p in the format implied by the location's extension.
func (c Config)writePlot(ctx context.Context, loc string, p *plot.Plot) error {
	return c.write(ctx, loc, func(w io.Writer) error {
		return qc.Write(w, p, qc.FormatFor(loc), c.PlotSize())
	})
}

func (c Config)logSummary(what string, data []float64) {
	if c.Verbosity > 0 {
		log.Printf("%s: %s\n", what, qc.Summarize(data))
	}
}
