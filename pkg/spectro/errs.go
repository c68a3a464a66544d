package spectro

import(
	"errors"
	"fmt"
)

var(
	// ErrMalformedFilename means a lamp filename stem could not be split
	// into brand, lamp, ccd, exposure and id tokens.
	ErrMalformedFilename  = errors.New("spectro: malformed lamp filename")

	// ErrShapeMismatch means two arrays that must line up pixel for pixel don't.
	ErrShapeMismatch      = errors.New("spectro: shape mismatch")

	// ErrUnsupportedChannel means a CCD name is neither Blue nor Red.
	ErrUnsupportedChannel = errors.New("spectro: unsupported channel")

	// ErrUncalibrated means a spectrum has no wavelength mapping attached.
	ErrUncalibrated       = errors.New("spectro: spectrum has no wavelength calibration")

	ErrInvalidConfig      = errors.New("spectro: invalid configuration")

	// ErrInvalidExposure means the exposure time is zero, negative or
	// missing. It is also an ErrInvalidConfig.
	ErrInvalidExposure    = fmt.Errorf("%w: exposure time must be positive", ErrInvalidConfig)
	ErrMissingColumn      = errors.New("spectro: missing column")
	ErrMissingKeyword     = errors.New("spectro: missing header keyword")
)
