package specio

import(
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abworrall/arclamp/pkg/spectro"
	"github.com/abworrall/arclamp/pkg/store"
)

// A Loader reads pipeline inputs from store locations.
type Loader struct {
	Credentials string // For gs:// locations
}

// LoadFrame loads a 2D frame, picking the decoder by file extension.
func (ld Loader)LoadFrame(ctx context.Context, loc string) (spectro.Frame, error) {
	ext := strings.ToLower(filepath.Ext(loc))

	var decode func([]byte, string) (spectro.Frame, error)
	switch ext {
	case ".fits", ".fit", ".fts":
		decode = ReadFITSFrame
	case ".tif", ".tiff":
		decode = ReadTIFFFrame
	default:
		return spectro.Frame{}, fmt.Errorf("load %s: unhandled frame file type '%s'", loc, ext)
	}

	contents, err := store.ReadAll(ctx, loc, ld.Credentials)
	if err != nil {
		return spectro.Frame{}, fmt.Errorf("load %s: %w", loc, err)
	}
	return decode(contents, loc)
}

func (ld Loader)LoadSpectrum(ctx context.Context, loc string) (spectro.Spectrum, error) {
	contents, err := store.ReadAll(ctx, loc, ld.Credentials)
	if err != nil {
		return spectro.Spectrum{}, fmt.Errorf("load %s: %w", loc, err)
	}
	return ReadSpectrum(contents, loc)
}

func (ld Loader)LoadLineList(ctx context.Context, loc string) (spectro.LineList, error) {
	r, err := store.Open(ctx, loc, ld.Credentials)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}
	defer r.Close()

	lines, err := ReadLineList(r)
	if err != nil {
		return nil, fmt.Errorf("line list %s: %w", loc, err)
	}
	return lines, nil
}
