package specio

import(
	"bytes"
	"fmt"
	"image/color"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/arclamp/pkg/spectro"
)

// ReadTIFFFrame decodes a TIFF frame, as exported by some camera control
// software. Each pixel becomes its 16-bit gray level; rows are the image
// Y axis. If the file carries EXIF, its ExposureTime is kept on the frame.
func ReadTIFFFrame(contents []byte, name string) (spectro.Frame, error) {
	img, err := tiff.Decode(bytes.NewReader(contents))
	if err != nil {
		return spectro.Frame{}, fmt.Errorf("tiff loading '%s': %w", name, err)
	}

	b := img.Bounds()
	pix := make([]float64, 0, b.Dx()*b.Dy())
	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			pix = append(pix, float64(g.Y))
		}
	}

	frame, err := spectro.NewFrame(b.Dy(), b.Dx(), pix)
	if err != nil {
		return spectro.Frame{}, fmt.Errorf("'%s': %w", name, err)
	}
	frame.LoadFilename = name
	frame.ExposureSeconds = exifExposure(contents)

	return frame, nil
}

// exifExposure returns the EXIF ExposureTime in seconds, or 0 if there is
// none. Plenty of scientific TIFFs carry no EXIF at all.
func exifExposure(contents []byte) float64 {
	ex, err := exif.Decode(bytes.NewReader(contents))
	if err != nil {
		return 0
	}

	tag, err := ex.Get(exif.ExposureTime)
	if err != nil {
		return 0
	}
	num, denom, err := tag.Rat2(0)
	if err != nil || denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
