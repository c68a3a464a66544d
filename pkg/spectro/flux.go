package spectro

import(
	"fmt"
	"math"
	"strings"
)

// DefaultFiberCount is how many fibers are summed into one arc spectrum.
const DefaultFiberCount = 61

// A Line is a wavelength window around one emission line. The window is
// open: pixels exactly on Start or End are not in it.
type Line struct {
	Start float64
	End   float64
	Extra map[string]string // other columns from the line list, e.g. a name
}

func (l Line)Midpoint() float64 { return (l.Start + l.End) / 2.0 }

// Name is the line list's "name" column for this line, if it has one.
func (l Line)Name() string {
	for k, v := range l.Extra {
		if strings.EqualFold(k, "name") {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (l Line)Contains(w float64) bool { return w > l.Start && w < l.End }

type LineList []Line

// A LineMeasurement is the result for one Line.
type LineMeasurement struct {
	Line
	Pixel      int     // Pixel nearest the window midpoint
	Wavelength float64 // The window midpoint
	RawFlux    float64 // Summed counts inside the window
	NPixels    int     // How many pixels were summed
	Flux       float64 // RawFlux per second per fiber
}

// MeasureFlux sums data over every pixel whose wavelength falls strictly
// inside each line's window. A window with no pixels in it sums to 0.
func MeasureFlux(wavelength, data []float64, lines LineList) ([]float64, error) {
	fluxes, _, err := measureFlux(wavelength, data, lines)
	return fluxes, err
}

func measureFlux(wavelength, data []float64, lines LineList) ([]float64, []int, error) {
	if len(wavelength) != len(data) {
		return nil, nil, fmt.Errorf("%w: %d wavelengths for %d pixels", ErrShapeMismatch, len(wavelength), len(data))
	}

	fluxes := make([]float64, len(lines))
	counts := make([]int, len(lines))
	for i, l := range lines {
		for j, w := range wavelength {
			if l.Contains(w) {
				fluxes[i] += data[j]
				counts[i]++
			}
		}
	}
	return fluxes, counts, nil
}

// NearestPixel returns the index whose wavelength is closest to target,
// the lowest such index on a tie. It returns -1 for no wavelengths.
func NearestPixel(wavelength []float64, target float64) int {
	best, bestDist := -1, math.Inf(1)
	for j, w := range wavelength {
		if d := math.Abs(w - target); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// MeasureLines measures every line in a calibrated spectrum, and
// normalizes the summed counts by exposure time and fiber count. Results
// come back in line list order.
func MeasureLines(s Spectrum, lines LineList, fiberCount int) ([]LineMeasurement, error) {
	wavelength, err := s.Wavelengths()
	if err != nil {
		return nil, err
	}
	if err := s.Lamp.ValidateExposure(); err != nil {
		return nil, err
	}
	if fiberCount <= 0 {
		return nil, fmt.Errorf("%w: fiber count %d", ErrInvalidConfig, fiberCount)
	}

	fluxes, counts, err := measureFlux(wavelength, s.Data, lines)
	if err != nil {
		return nil, err
	}

	out := make([]LineMeasurement, len(lines))
	for i, l := range lines {
		mid := l.Midpoint()
		out[i] = LineMeasurement{
			Line:       l,
			Pixel:      NearestPixel(wavelength, mid),
			Wavelength: mid,
			RawFlux:    fluxes[i],
			NPixels:    counts[i],
			Flux:       fluxes[i] / float64(s.Lamp.ExposureSeconds) / float64(fiberCount),
		}
	}
	return out, nil
}
