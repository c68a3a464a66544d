package pipeline

import(
	"context"
	"log"

	"github.com/abworrall/arclamp/pkg/qc"
	"github.com/abworrall/arclamp/pkg/spectro"
)

type CalibrateRequest struct {
	Input  string
	Output string
	Plot   string // optional, counts vs. wavelength
}

// Calibrate attaches the channel's wavelength mapping to a 1D spectrum.
// The data are written back unchanged.
func Calibrate(ctx context.Context, cfg Config, req CalibrateRequest) (spectro.Spectrum, error) {
	s, err := cfg.loader().LoadSpectrum(ctx, req.Input)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	if s.IsCalibrated() {
		log.Printf("%s already has a dispersion (%s), replacing it\n", req.Input, s.Dispersion)
	}

	cal, err := spectro.Calibrate(s, cfg.Calibration)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	log.Printf("Calibrated %s\n", cal)

	if err := cfg.writeSpectrum(ctx, req.Output, cal); err != nil {
		return cal, err
	}

	if req.Plot != "" {
		wl, err := cal.Wavelengths()
		if err != nil {
			return cal, err
		}
		p, err := qc.PlotCalibrated(wl, cal.Data, cal.Lamp.String())
		if err != nil {
			return cal, err
		}
		if err := cfg.writePlot(ctx, req.Plot, p); err != nil {
			return cal, err
		}
	}

	return cal, nil
}
