package specio

import(
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/arclamp/pkg/spectro"
)

const(
	KeyBrand    = spectro.KeyBrand
	KeyLamp     = spectro.KeyLamp
	KeyCCD      = spectro.KeyCCD
	KeyExptime  = spectro.KeyExptime
	KeyID       = spectro.KeyID

	KeyCrpix    = "CRPIX1"
	KeyCdelt    = "CDELT1"
	KeyCrval    = "CRVAL1"
)

// Keywords that are not carried over from an input header: fitsio writes
// the data layout itself, the data are always written unscaled, and the
// wavelength mapping comes from the Dispersion.
var droppedKeys = map[string]bool{
	"SIMPLE": true, "BITPIX": true, "NAXIS": true, "EXTEND": true,
	"XTENSION": true, "PCOUNT": true, "GCOUNT": true, "END": true,
	"BSCALE": true, "BZERO": true, "BLANK": true,
	"COMMENT": true, "HISTORY": true, "": true,

	"WCSAXES": true, KeyCrpix: true, KeyCdelt: true, KeyCrval: true,
	"CTYPE1": true, "CUNIT1": true, "CD1_1": true,
}

func isDropped(key string) bool {
	return droppedKeys[key] || (strings.HasPrefix(key, "NAXIS") && len(key) > len("NAXIS"))
}

// headerCards copies the header keywords worth keeping, in order.
func headerCards(hdr *fitsio.Header) []spectro.Card {
	out := []spectro.Card{}
	seen := map[string]bool{}
	for _, k := range hdr.Keys() {
		if isDropped(k) || seen[k] {
			continue
		}
		seen[k] = true
		c := hdr.Get(k)
		if c == nil || c.Value == nil {
			continue
		}
		out = append(out, spectro.Card{Name: c.Name, Value: c.Value, Comment: c.Comment})
	}
	return out
}

// openFITS decodes a whole FITS file held in memory.
func openFITS(contents []byte, name string) (*fitsio.File, error) {
	f, err := fitsio.Open(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("fits parsing '%s': %w", name, err)
	}
	return f, nil
}

// findImage returns the first image HDU with naxis axes and some data. Raw
// frames sometimes keep the pixels in an extension behind an empty primary.
func findImage(f *fitsio.File, naxis int, name string) (fitsio.Image, error) {
	for _, hdu := range f.HDUs() {
		img, ok := hdu.(fitsio.Image)
		if !ok {
			continue
		}
		axes := img.Header().Axes()
		if len(axes) == naxis && axes[0] > 0 {
			return img, nil
		}
	}
	return nil, fmt.Errorf("'%s': no %dD image HDU", name, naxis)
}

// readPixels decodes image data as float64, applying BSCALE/BZERO. fitsio
// only reads into a slice whose element matches BITPIX, so read natively
// and widen.
func readPixels(img fitsio.Image) ([]float64, error) {
	hdr := img.Header()
	n := 1
	for _, dim := range hdr.Axes() {
		n *= dim
	}
	var out []float64

	switch hdr.Bitpix() {
	case 8:
		raw := make([]uint8, n)
		if err := img.Read(&raw); err != nil { return nil, err }
		out = widen(raw)
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil { return nil, err }
		out = widen(raw)
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil { return nil, err }
		out = widen(raw)
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil { return nil, err }
		out = widen(raw)
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil { return nil, err }
		out = widen(raw)
	case -64:
		out = make([]float64, n)
		if err := img.Read(&out); err != nil { return nil, err }
	default:
		return nil, fmt.Errorf("unhandled BITPIX %d", hdr.Bitpix())
	}

	bscale, err := cardFloatOr(hdr, "BSCALE", 1.0)
	if err != nil {
		return nil, err
	}
	bzero, err := cardFloatOr(hdr, "BZERO", 0.0)
	if err != nil {
		return nil, err
	}
	if bscale != 1.0 || bzero != 0.0 {
		for i := range out {
			out[i] = bzero + bscale*out[i]
		}
	}

	return out, nil
}

func widen[T uint8 | int16 | int32 | int64 | float32](raw []T) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}

// ReadFITSFrame decodes a 2D frame. NAXIS1 is the dispersion axis
// (columns), NAXIS2 runs along the slit (rows).
func ReadFITSFrame(contents []byte, name string) (spectro.Frame, error) {
	f, err := openFITS(contents, name)
	if err != nil {
		return spectro.Frame{}, err
	}
	defer f.Close()

	img, err := findImage(f, 2, name)
	if err != nil {
		return spectro.Frame{}, err
	}
	pix, err := readPixels(img)
	if err != nil {
		return spectro.Frame{}, fmt.Errorf("fits data '%s': %w", name, err)
	}

	axes := img.Header().Axes()
	frame, err := spectro.NewFrame(axes[1], axes[0], pix)
	if err != nil {
		return spectro.Frame{}, fmt.Errorf("'%s': %w", name, err)
	}
	frame.LoadFilename = name
	if img.Header().Get(KeyExptime) != nil {
		if frame.ExposureSeconds, err = cardFloat(img.Header(), KeyExptime); err != nil {
			return spectro.Frame{}, fmt.Errorf("'%s': %w", name, err)
		}
	}

	return frame, nil
}

// ReadSpectrum decodes a 1D spectrum. Lamp cards that are absent read as
// zero values; the stage that needs one reports it. The wavelength mapping
// is attached only if all of CRPIX1, CDELT1 and CRVAL1 are present. Other
// header cards are kept on the Spectrum, so they survive a rewrite.
func ReadSpectrum(contents []byte, name string) (spectro.Spectrum, error) {
	f, err := openFITS(contents, name)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	defer f.Close()

	img, err := findImage(f, 1, name)
	if err != nil {
		return spectro.Spectrum{}, err
	}
	hdr := img.Header()

	data, err := readPixels(img)
	if err != nil {
		return spectro.Spectrum{}, fmt.Errorf("fits data '%s': %w", name, err)
	}
	if naxis1 := hdr.Axes()[0]; len(data) != naxis1 {
		return spectro.Spectrum{}, fmt.Errorf("%w: '%s' has %d values, NAXIS1=%d", spectro.ErrShapeMismatch, name, len(data), naxis1)
	}

	s := spectro.Spectrum{Data: data, Header: headerCards(hdr)}
	s.Lamp.Brand, _ = cardString(hdr, KeyBrand)
	s.Lamp.Lamp, _ = cardString(hdr, KeyLamp)
	s.Lamp.CCD, _ = cardString(hdr, KeyCCD)
	s.Lamp.ID, _ = cardString(hdr, KeyID)
	if hdr.Get(KeyExptime) != nil {
		if s.Lamp.ExposureSeconds, err = cardInt(hdr, KeyExptime); err != nil {
			return spectro.Spectrum{}, fmt.Errorf("'%s': %w", name, err)
		}
	}

	if s.Dispersion, err = readDispersion(hdr); err != nil {
		return spectro.Spectrum{}, fmt.Errorf("'%s': %w", name, err)
	}

	return s, nil
}

func readDispersion(hdr *fitsio.Header) (*spectro.Dispersion, error) {
	keys := []string{KeyCrpix, KeyCdelt, KeyCrval}
	present := 0
	for _, k := range keys {
		if hdr.Get(k) != nil {
			present++
		}
	}
	switch present {
	case 0:
		return nil, nil
	case len(keys):
	default:
		return nil, fmt.Errorf("%w: partial wavelength solution, need all of %v", spectro.ErrMissingKeyword, keys)
	}

	d := spectro.Dispersion{}
	var err error
	if d.RefPixel, err = cardFloat(hdr, KeyCrpix); err != nil { return nil, err }
	if d.Step, err = cardFloat(hdr, KeyCdelt); err != nil { return nil, err }
	if d.RefValue, err = cardFloat(hdr, KeyCrval); err != nil { return nil, err }
	return &d, nil
}

// SpectrumCards are the header cards describing s, beyond the ones fitsio
// derives from the data (SIMPLE, BITPIX, NAXIS...): the carried header,
// then the wavelength mapping if there is one.
func SpectrumCards(s spectro.Spectrum) []fitsio.Card {
	cards := []fitsio.Card{}
	for _, c := range s.HeaderCards() {
		cards = append(cards, fitsio.Card{Name: c.Name, Value: c.Value, Comment: c.Comment})
	}

	if d := s.Dispersion; d != nil {
		cards = append(cards,
			fitsio.Card{Name: "WCSAXES", Value: 1},
			fitsio.Card{Name: KeyCrpix,  Value: d.RefPixel, Comment: "reference pixel"},
			fitsio.Card{Name: KeyCdelt,  Value: d.Step,     Comment: "wavelength step per pixel"},
			fitsio.Card{Name: KeyCrval,  Value: d.RefValue, Comment: "wavelength at reference pixel"},
			fitsio.Card{Name: "CTYPE1",  Value: "WAVE"},
			fitsio.Card{Name: "CUNIT1",  Value: "Angstrom"},
		)
	}
	return cards
}

// WriteSpectrum encodes s as a single 1D float64 primary HDU.
func WriteSpectrum(w io.Writer, s spectro.Spectrum) error {
	if s.Len() == 0 {
		return fmt.Errorf("%w: empty spectrum", spectro.ErrShapeMismatch)
	}

	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer f.Close()

	img := fitsio.NewImage(-64, []int{s.Len()})
	defer img.Close()

	if err := img.Header().Append(SpectrumCards(s)...); err != nil {
		return fmt.Errorf("fits header: %w", err)
	}
	if err := img.Write(s.Data); err != nil {
		return fmt.Errorf("fits data: %w", err)
	}
	if err := f.Write(img); err != nil {
		return fmt.Errorf("fits write: %w", err)
	}
	return nil
}

// WriteFrame encodes a 2D frame, for tests and for saving intermediate
// frames.
func WriteFrame(w io.Writer, frame spectro.Frame, cards ...fitsio.Card) error {
	rows, cols := frame.Dims()

	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer f.Close()

	img := fitsio.NewImage(-64, []int{cols, rows})
	defer img.Close()

	if len(cards) > 0 {
		if err := img.Header().Append(cards...); err != nil {
			return fmt.Errorf("fits header: %w", err)
		}
	}
	if err := img.Write(frame.Pixels()); err != nil {
		return fmt.Errorf("fits data: %w", err)
	}
	return f.Write(img)
}
