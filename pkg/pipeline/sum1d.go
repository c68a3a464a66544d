package pipeline

import(
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/abworrall/arclamp/pkg/qc"
	"github.com/abworrall/arclamp/pkg/spectro"
)

// Sum1DRequest names the inputs and outputs of the spatial summation
// stage. The optional outputs are skipped when empty.
type Sum1DRequest struct {
	Image  string
	Dark   string
	Output string // 1D FITS spectrum
	Plot   string // counts vs. pixel

	Preview   string // grayscale PNG of the dark-subtracted frame
	HDR       string // the dark-subtracted frame as Radiance RGBE
	Histogram string // histogram of dark-subtracted pixel values
}

// Sum1D collapses a dark-subtracted arc lamp frame into a 1D spectrum,
// tagged with the lamp metadata from the image's filename.
func Sum1D(ctx context.Context, cfg Config, req Sum1DRequest) (spectro.Spectrum, error) {
	lamp, err := spectro.ParseLampFilename(req.Image)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	if _, err := lamp.Channel(); err != nil {
		log.Printf("warning: %s: %v; wavecal will reject this spectrum\n", req.Image, err)
	}
	log.Printf("Lamp: %s\n", lamp)

	ld := cfg.loader()
	frame, err := ld.LoadFrame(ctx, req.Image)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	dark, err := ld.LoadFrame(ctx, req.Dark)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	log.Printf("Loaded %s, dark %s\n", frame, dark)

	if frame.ExposureSeconds > 0 && math.Abs(frame.ExposureSeconds - float64(lamp.ExposureSeconds)) > 0.5 {
		log.Printf("warning: %s: file says %gs exposure, filename says %ds; using the filename\n",
			frame.Filename(), frame.ExposureSeconds, lamp.ExposureSeconds)
	}

	data, err := spectro.SumSpatial(frame, dark)
	if err != nil {
		return spectro.Spectrum{}, fmt.Errorf("sum %s: %w", req.Image, err)
	}
	s := spectro.NewSpectrum(data, lamp)
	cfg.logSummary("Summed spectrum", data)

	if err := cfg.writeSpectrum(ctx, req.Output, s); err != nil {
		return s, err
	}

	p, err := qc.PlotCounts(data, lamp.String())
	if err != nil {
		return s, err
	}
	if err := cfg.writePlot(ctx, req.Plot, p); err != nil {
		return s, err
	}

	return s, writeFrameExtras(ctx, cfg, req, frame, dark)
}

func writeFrameExtras(ctx context.Context, cfg Config, req Sum1DRequest, frame, dark spectro.Frame) error {
	if req.Preview == "" && req.HDR == "" && req.Histogram == "" {
		return nil
	}

	sub, err := frame.Subtract(dark)
	if err != nil {
		return err
	}

	if req.Preview != "" {
		err := cfg.write(ctx, req.Preview, func(w io.Writer) error {
			return qc.WritePreviewPNG(w, sub, sub.Filename() + " - dark")
		})
		if err != nil {
			return err
		}
	}

	if req.HDR != "" {
		err := cfg.write(ctx, req.HDR, func(w io.Writer) error { return qc.WritePreviewHDR(w, sub) })
		if err != nil {
			return err
		}
	}

	if req.Histogram != "" {
		px := sub.Pixels()
		cfg.logSummary("Dark-subtracted pixels", px)
		p, err := qc.PlotPixelHistogram(px, 100, sub.Filename())
		if err != nil {
			return err
		}
		if err := cfg.writePlot(ctx, req.Histogram, p); err != nil {
			return err
		}
	}

	return nil
}
