package spectro

import(
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// LampInfo describes how an arc frame was taken. It travels with the data
// from the raw frame, through the 1D spectrum header, to flux measurement.
type LampInfo struct {
	Brand           string  // Lamp manufacturer, e.g. "Photron"
	Lamp            string  // Lamp type, e.g. "ThAr"
	CCD             string  // Which arm took the frame, as written ("Blue", "Red")
	ExposureSeconds int
	ID              string  // Frame identifier; kept as text, "02" is not 2
}

func (li LampInfo)String() string {
	return fmt.Sprintf("%s %s (%s): %ds exposure", li.Brand, li.Lamp, li.CCD, li.ExposureSeconds)
}

// Channel parses the CCD field.
func (li LampInfo)Channel() (Channel, error) { return ParseChannel(li.CCD) }

// ValidateExposure is called before anything divides by the exposure time.
func (li LampInfo)ValidateExposure() error {
	if li.ExposureSeconds <= 0 {
		return fmt.Errorf("%w: EXPTIME=%d", ErrInvalidExposure, li.ExposureSeconds)
	}
	return nil
}

// ParseLampFilename pulls the lamp info out of an arc frame's filename. The
// stem looks like `Photron_ThAr_Red_60s_02`: brand, lamp and CCD are the
// first three tokens, exposure and id are the last two. Any tokens in
// between are ignored.
func ParseLampFilename(filename string) (LampInfo, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	toks := strings.Split(stem, "_")
	if len(toks) < 5 {
		return LampInfo{}, fmt.Errorf("%w: '%s' has %d tokens, want brand_lamp_ccd_<N>s_id",
			ErrMalformedFilename, stem, len(toks))
	}

	exp, err := parseExposureToken(toks[len(toks)-2])
	if err != nil {
		return LampInfo{}, fmt.Errorf("%w: '%s': %v", ErrMalformedFilename, stem, err)
	}

	return LampInfo{
		Brand:           toks[0],
		Lamp:            toks[1],
		CCD:             toks[2],
		ExposureSeconds: exp,
		ID:              toks[len(toks)-1],
	}, nil
}

// parseExposureToken reads "60s" as 60.
func parseExposureToken(tok string) (int, error) {
	num := strings.TrimSuffix(tok, "s")
	if num == tok {
		return 0, fmt.Errorf("exposure token '%s' lacks the 's' unit", tok)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("exposure token '%s' is not an integer count of seconds", tok)
	}
	return n, nil
}
