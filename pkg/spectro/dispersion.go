package spectro

import(
	"fmt"
)

// A Dispersion is a linear pixel-to-wavelength mapping, in FITS WCS
// terms: RefPixel is CRPIX1 (1-based), Step is CDELT1 and RefValue is
// CRVAL1.
type Dispersion struct {
	RefPixel float64
	Step     float64
	RefValue float64
}

// ReferencePixel is the CRPIX1 used by both arms of the reference instrument.
const ReferencePixel = 2048.0

// Wavelength returns the wavelength at the 0-based pixel index i.
func (d Dispersion)Wavelength(i int) float64 {
	return d.RefValue + (float64(i) + 1.0 - d.RefPixel) * d.Step
}

// Wavelengths evaluates the mapping for pixels 0..n-1.
func (d Dispersion)Wavelengths(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = d.Wavelength(i)
	}
	return w
}

func (d Dispersion)String() string {
	return fmt.Sprintf("crpix=%.1f cdelt=%.13f crval=%.9f", d.RefPixel, d.Step, d.RefValue)
}

// A CalibrationTable holds the wavelength mapping for each arm, copied from
// a properly reduced frame of the reference instrument.
type CalibrationTable struct {
	Blue Dispersion
	Red  Dispersion
}

func DefaultCalibrationTable() CalibrationTable {
	return CalibrationTable{
		Blue: Dispersion{RefPixel: ReferencePixel, Step: 0.5470085470085, RefValue: 4799.726495726},
		Red:  Dispersion{RefPixel: ReferencePixel, Step: 0.5185891473977, RefValue: 6781.932617188},
	}
}

func (t CalibrationTable)For(c Channel) (Dispersion, error) {
	switch c {
	case Blue: return t.Blue, nil
	case Red:  return t.Red, nil
	}
	return Dispersion{}, fmt.Errorf("%w: %s", ErrUnsupportedChannel, c)
}

// Validate checks each arm has a usable mapping.
func (t CalibrationTable)Validate() error {
	for _, c := range Channels {
		d, _ := t.For(c)
		if d.Step == 0 {
			return fmt.Errorf("%w: %s calibration has zero step", ErrInvalidConfig, c)
		}
	}
	return nil
}
