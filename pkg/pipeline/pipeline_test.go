package pipeline

import(
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/arclamp/pkg/specio"
	"github.com/abworrall/arclamp/pkg/spectro"
)

const lineListCSV = `line_start,line_end,name
5760,5785,a
5700,5710,offscale
5790,5800,b
`

func writeFrame(t *testing.T, path string, rows, cols int, v float64, cards ...fitsio.Card) {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	frame, err := spectro.NewFrame(rows, cols, data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, specio.WriteFrame(&buf, frame, cards...))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

type fixture struct {
	dir    string
	image  string
	dark   string
	lines  string
}

func newFixture(t *testing.T, ccd string) fixture {
	dir := t.TempDir()
	f := fixture{
		dir:   dir,
		image: filepath.Join(dir, "Photron_ThAr_"+ccd+"_60s_001.fits"),
		dark:  filepath.Join(dir, "dark.fits"),
		lines: filepath.Join(dir, "lines.csv"),
	}
	writeFrame(t, f.image, 4, 200, 10, fitsio.Card{Name: specio.KeyExptime, Value: 60})
	writeFrame(t, f.dark, 4, 200, 1)
	require.NoError(t, os.WriteFile(f.lines, []byte(lineListCSV), 0644))
	return f
}

func (f fixture)path(name string) string { return filepath.Join(f.dir, name) }

func runAll(t *testing.T, ctx context.Context, cfg Config, f fixture) []spectro.LineMeasurement {
	_, err := Sum1D(ctx, cfg, Sum1DRequest{
		Image: f.image, Dark: f.dark, Output: f.path("1d.fits"), Plot: f.path("1d.png"),
	})
	require.NoError(t, err)

	_, err = Calibrate(ctx, cfg, CalibrateRequest{Input: f.path("1d.fits"), Output: f.path("cal.fits")})
	require.NoError(t, err)

	ms, err := MeasureFluxes(ctx, cfg, FluxRequest{
		Input: f.path("cal.fits"), Table: f.path("fluxes.csv"), LineList: f.lines, Plot: f.path("fluxes.png"),
	})
	require.NoError(t, err)
	return ms
}

func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig()
	f := newFixture(t, "Red")

	ms := runAll(t, ctx, cfg, f)

	b, err := os.ReadFile(f.path("1d.fits"))
	require.NoError(t, err)
	s, err := specio.ReadSpectrum(b, "1d.fits")
	require.NoError(t, err)
	assert.Equal(t, 200, s.Len())
	assert.Equal(t, 36.0, s.Data[0], "4 rows of 10-1")
	assert.Equal(t, spectro.LampInfo{Brand: "Photron", Lamp: "ThAr", CCD: "Red", ExposureSeconds: 60, ID: "001"}, s.Lamp)
	assert.False(t, s.IsCalibrated())

	b, err = os.ReadFile(f.path("cal.fits"))
	require.NoError(t, err)
	cal, err := specio.ReadSpectrum(b, "cal.fits")
	require.NoError(t, err)
	require.True(t, cal.IsCalibrated())
	assert.Equal(t, s.Data, cal.Data)
	assert.Equal(t, 2048.0, cal.Dispersion.RefPixel)
	assert.Equal(t, 0.5185891473977, cal.Dispersion.Step)
	assert.Equal(t, 6781.932617188, cal.Dispersion.RefValue)

	require.Len(t, ms, 3)
	for _, m := range ms {
		assert.InDelta(t, m.RawFlux/60.0/61.0, m.Flux, 1e-12)
		assert.Equal(t, 36.0*float64(m.NPixels), m.RawFlux)
	}
	assert.Greater(t, ms[0].NPixels, 0)
	assert.Equal(t, 0.0, ms[1].Flux, "window below the spectrum")
	assert.Greater(t, ms[2].NPixels, 0)

	r, err := os.Open(f.path("fluxes.csv"))
	require.NoError(t, err)
	defer r.Close()
	rows, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"pixel", "Wavelength", "Flux"}, rows[0])
	assert.Equal(t, "5772.5", rows[1][1])
	assert.Equal(t, "0", rows[2][2])

	for _, name := range []string{"1d.png", "fluxes.png"} {
		fi, err := os.Stat(f.path(name))
		require.NoError(t, err, name)
		assert.Greater(t, fi.Size(), int64(0), name)
	}
}

func TestPipeline_Blue(t *testing.T) {
	f := newFixture(t, "Blue")
	cal := filepath.Join(f.dir, "cal.fits")

	_, err := Sum1D(context.Background(), NewConfig(), Sum1DRequest{
		Image: f.image, Dark: f.dark, Output: f.path("1d.fits"), Plot: f.path("1d.png"),
	})
	require.NoError(t, err)

	s, err := Calibrate(context.Background(), NewConfig(), CalibrateRequest{
		Input: f.path("1d.fits"), Output: cal, Plot: f.path("cal.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5470085470085, s.Dispersion.Step)
	assert.Equal(t, 4799.726495726, s.Dispersion.RefValue)
	assert.FileExists(t, f.path("cal.png"))
}

func TestPipeline_Idempotent(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig()
	f := newFixture(t, "Red")

	read := func() map[string][]byte {
		out := map[string][]byte{}
		for _, name := range []string{"1d.fits", "cal.fits", "fluxes.csv"} {
			b, err := os.ReadFile(f.path(name))
			require.NoError(t, err)
			out[name] = b
		}
		return out
	}

	runAll(t, ctx, cfg, f)
	first := read()
	runAll(t, ctx, cfg, f)
	assert.Equal(t, first, read())
}

func TestSum1D_Extras(t *testing.T) {
	f := newFixture(t, "Red")
	cfg := NewConfig()
	cfg.Verbosity = 1

	_, err := Sum1D(context.Background(), cfg, Sum1DRequest{
		Image: f.image, Dark: f.dark, Output: f.path("1d.fits"), Plot: f.path("1d.svg"),
		Preview: f.path("preview.png"), HDR: f.path("frame.hdr"), Histogram: f.path("hist.png"),
	})
	require.NoError(t, err)

	for _, name := range []string{"1d.svg", "preview.png", "frame.hdr", "hist.png"} {
		assert.FileExists(t, f.path(name))
	}
}

func TestSum1D_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig()
	f := newFixture(t, "Red")

	t.Run("shape mismatch", func(t *testing.T) {
		dark := f.path("small_dark.fits")
		writeFrame(t, dark, 3, 200, 1)
		_, err := Sum1D(ctx, cfg, Sum1DRequest{Image: f.image, Dark: dark, Output: f.path("x.fits"), Plot: f.path("x.png")})
		assert.ErrorIs(t, err, spectro.ErrShapeMismatch)
		assert.NoFileExists(t, f.path("x.fits"))
	})

	t.Run("malformed filename", func(t *testing.T) {
		_, err := Sum1D(ctx, cfg, Sum1DRequest{Image: f.dark, Dark: f.dark, Output: f.path("x.fits"), Plot: f.path("x.png")})
		assert.ErrorIs(t, err, spectro.ErrMalformedFilename)
	})

	t.Run("missing dark", func(t *testing.T) {
		_, err := Sum1D(ctx, cfg, Sum1DRequest{Image: f.image, Dark: f.path("nope.fits"), Output: f.path("x.fits"), Plot: f.path("x.png")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCalibrate_UnsupportedChannel(t *testing.T) {
	f := newFixture(t, "Green")
	ctx := context.Background()

	_, err := Sum1D(ctx, NewConfig(), Sum1DRequest{Image: f.image, Dark: f.dark, Output: f.path("1d.fits"), Plot: f.path("1d.png")})
	require.NoError(t, err, "stage 1 only warns")

	_, err = Calibrate(ctx, NewConfig(), CalibrateRequest{Input: f.path("1d.fits"), Output: f.path("cal.fits")})
	assert.ErrorIs(t, err, spectro.ErrUnsupportedChannel)
	assert.NoFileExists(t, f.path("cal.fits"))
}

func TestMeasureFluxes_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig()

	t.Run("uncalibrated", func(t *testing.T) {
		f := newFixture(t, "Red")
		_, err := Sum1D(ctx, cfg, Sum1DRequest{Image: f.image, Dark: f.dark, Output: f.path("1d.fits"), Plot: f.path("1d.png")})
		require.NoError(t, err)

		_, err = MeasureFluxes(ctx, cfg, FluxRequest{Input: f.path("1d.fits"), Table: f.path("t.csv"), LineList: f.lines, Plot: f.path("t.png")})
		assert.ErrorIs(t, err, spectro.ErrUncalibrated)
	})

	t.Run("zero exposure", func(t *testing.T) {
		f := newFixture(t, "Red")
		s := spectro.NewSpectrum([]float64{1, 2, 3}, spectro.LampInfo{Brand: "Photron", Lamp: "ThAr", CCD: "Red", ID: "1"})
		s, err := spectro.Calibrate(s, cfg.Calibration)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, specio.WriteSpectrum(&buf, s))
		require.NoError(t, os.WriteFile(f.path("cal.fits"), buf.Bytes(), 0644))

		_, err = MeasureFluxes(ctx, cfg, FluxRequest{Input: f.path("cal.fits"), Table: f.path("t.csv"), LineList: f.lines, Plot: f.path("t.png")})
		assert.ErrorIs(t, err, spectro.ErrInvalidExposure)
		assert.ErrorIs(t, err, spectro.ErrInvalidConfig)
	})

	t.Run("bad line list", func(t *testing.T) {
		f := newFixture(t, "Red")
		runAll(t, ctx, cfg, f)
		bad := f.path("bad.csv")
		require.NoError(t, os.WriteFile(bad, []byte("line_start\n1\n"), 0644))

		_, err := MeasureFluxes(ctx, cfg, FluxRequest{Input: f.path("cal.fits"), Table: f.path("t.csv"), LineList: bad, Plot: f.path("t.png")})
		assert.ErrorIs(t, err, spectro.ErrMissingColumn)
	})
}

func TestCalibrate_ExtendsInputHeader(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.fits"), filepath.Join(dir, "out.fits")

	var buf bytes.Buffer
	f, err := fitsio.Create(&buf)
	require.NoError(t, err)
	img := fitsio.NewImage(-64, []int{4})
	require.NoError(t, img.Header().Append(
		fitsio.Card{Name: specio.KeyCCD, Value: "Red"},
		fitsio.Card{Name: "OBJECT", Value: "arc"},
		fitsio.Card{Name: "DATE-OBS", Value: "2019-03-02T01:02:03"},
	))
	require.NoError(t, img.Write([]float64{1, 2, 3, 4}))
	require.NoError(t, f.Write(img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0644))

	_, err = Calibrate(context.Background(), NewConfig(), CalibrateRequest{Input: in, Output: out})
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	got, err := fitsio.Open(bytes.NewReader(b))
	require.NoError(t, err)
	defer got.Close()
	hdr := got.HDU(0).Header()

	assert.Equal(t, "arc", hdr.Get("OBJECT").Value)
	assert.Equal(t, "2019-03-02T01:02:03", hdr.Get("DATE-OBS").Value)
	assert.Equal(t, "Red", hdr.Get(specio.KeyCCD).Value)
	assert.NotNil(t, hdr.Get(specio.KeyCrval))
	for _, k := range []string{specio.KeyExptime, specio.KeyBrand, specio.KeyLamp, specio.KeyID} {
		assert.Nil(t, hdr.Get(k), "%s should not be invented", k)
	}
}
