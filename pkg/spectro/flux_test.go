package spectro

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaussian samples a normalized Gaussian at integer pixels 0..n-1.
func gaussian(n int, mean, sigma float64) (wavelength, data []float64) {
	norm := 1.0 / math.Sqrt(2*math.Pi*sigma*sigma)
	for i:=0; i<n; i++ {
		x := float64(i)
		wavelength = append(wavelength, x)
		data = append(data, norm * math.Exp(-0.5 * math.Pow((x-mean)/sigma, 2)))
	}
	return
}

func TestMeasureFlux_KnownGaussian(t *testing.T) {
	wavelength, data := gaussian(100, 50, 2)

	fluxes, err := MeasureFlux(wavelength, data, LineList{{Start: 40, End: 60}})
	require.NoError(t, err)
	require.Len(t, fluxes, 1)
	assert.InDelta(t, 1.0, fluxes[0], 1e-5)
}

func TestMeasureFlux_OpenInterval(t *testing.T) {
	wavelength := []float64{1, 2, 3, 4, 5}
	data := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		name string
		line Line
		want float64
	}{
		{"boundaries excluded", Line{Start: 2, End: 4}, 30},
		{"between pixels", Line{Start: 1.5, End: 4.5}, 90},
		{"everything", Line{Start: 0, End: 6}, 150},
		{"below range", Line{Start: -10, End: 0.5}, 0},
		{"above range", Line{Start: 100, End: 200}, 0},
		{"inverted", Line{Start: 4, End: 2}, 0},
		{"degenerate", Line{Start: 3, End: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MeasureFlux(wavelength, data, LineList{tt.line})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestMeasureFlux_LengthMismatch(t *testing.T) {
	_, err := MeasureFlux([]float64{1, 2}, []float64{1}, LineList{{Start: 0, End: 3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNearestPixel(t *testing.T) {
	wavelength := []float64{10, 11, 12, 13}

	assert.Equal(t, 0, NearestPixel(wavelength, -5))
	assert.Equal(t, 2, NearestPixel(wavelength, 12.2))
	assert.Equal(t, 3, NearestPixel(wavelength, 99))
	assert.Equal(t, 1, NearestPixel(wavelength, 11.5), "ties go to the lowest pixel")
	assert.Equal(t, -1, NearestPixel(nil, 1))
}

func TestMeasureLines(t *testing.T) {
	data := make([]float64, 10)
	for i := range data {
		data[i] = 61.0 * 2.0 // 1 count per fiber per second, for a 2s exposure
	}
	s := NewSpectrum(data, LampInfo{CCD: "Red", ExposureSeconds: 2})
	s.Dispersion = &Dispersion{RefPixel: 1, Step: 1, RefValue: 100} // pixel i is at 100+i

	lines := LineList{
		{Start: 101.5, End: 104.5},  // pixels 2,3,4
		{Start: 500, End: 600},      // off the end
		{Start: 99, End: 100.5},     // pixel 0
	}

	got, err := MeasureLines(s, lines, DefaultFiberCount)
	require.NoError(t, err)
	require.Len(t, got, len(lines))

	assert.Equal(t, 3, got[0].Pixel)
	assert.InDelta(t, 103.0, got[0].Wavelength, 1e-12)
	assert.Equal(t, 3, got[0].NPixels)
	assert.InDelta(t, 3.0, got[0].Flux, 1e-12)

	assert.Equal(t, 9, got[1].Pixel)
	assert.Equal(t, 0.0, got[1].Flux)
	assert.Equal(t, 0, got[1].NPixels)

	assert.Equal(t, 0, got[2].Pixel)
	assert.InDelta(t, 1.0, got[2].Flux, 1e-12)
}

func TestMeasureLines_Errors(t *testing.T) {
	lines := LineList{{Start: 0, End: 10}}
	cal := &Dispersion{RefPixel: 1, Step: 1, RefValue: 0}

	_, err := MeasureLines(NewSpectrum([]float64{1}, LampInfo{ExposureSeconds: 1}), lines, 61)
	assert.ErrorIs(t, err, ErrUncalibrated)

	s := NewSpectrum([]float64{1}, LampInfo{ExposureSeconds: 0})
	s.Dispersion = cal
	_, err = MeasureLines(s, lines, 61)
	assert.ErrorIs(t, err, ErrInvalidExposure)

	s.Lamp.ExposureSeconds = 10
	_, err = MeasureLines(s, lines, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLine_Name(t *testing.T) {
	assert.Equal(t, "", Line{Start: 1, End: 2}.Name())
	assert.Equal(t, "ArI", Line{Extra: map[string]string{"Name": " ArI ", "ion": "Ar"}}.Name())
}
