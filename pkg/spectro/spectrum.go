package spectro

import(
	"fmt"
)

// A Spectrum is a 1D array of counts per detector pixel, with the lamp
// info it was made from. Once wavelength calibrated it also carries a
// Dispersion.
type Spectrum struct {
	Data       []float64
	Lamp       LampInfo
	Dispersion *Dispersion // nil until calibrated

	// Header cards other than the data layout and the wavelength mapping,
	// carried from file to file. Lamp keywords appear here only if the
	// file had them.
	Header     []Card
}

// NewSpectrum starts a spectrum whose header is just the lamp cards.
func NewSpectrum(data []float64, lamp LampInfo) Spectrum {
	return Spectrum{Data: data, Lamp: lamp, Header: lamp.Cards()}
}

func (s Spectrum)Len() int          { return len(s.Data) }
func (s Spectrum)IsCalibrated() bool { return s.Dispersion != nil }

func (s Spectrum)String() string {
	str := fmt.Sprintf("Spectrum[%s, %d pixels", s.Lamp, s.Len())
	if s.Dispersion != nil {
		str += fmt.Sprintf(", %s", *s.Dispersion)
	}
	return str + "]"
}

// Wavelengths returns the wavelength of every pixel.
func (s Spectrum)Wavelengths() ([]float64, error) {
	if s.Dispersion == nil {
		return nil, ErrUncalibrated
	}
	return s.Dispersion.Wavelengths(s.Len()), nil
}

// Calibrate copies the wavelength mapping for the spectrum's arm out of the
// table. The counts are untouched; the returned Spectrum shares Data with s.
func Calibrate(s Spectrum, table CalibrationTable) (Spectrum, error) {
	ch, err := s.Lamp.Channel()
	if err != nil {
		return s, err
	}
	d, err := table.For(ch)
	if err != nil {
		return s, err
	}

	out := s
	out.Dispersion = &d
	return out, nil
}
