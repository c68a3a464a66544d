package qc

import(
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/arclamp/pkg/spectro"
)

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
func gammaExpand(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// WritePreviewPNG saves a grayscale view of the frame, scaled over its range
// of values and gamma expanded so it looks right to a human, with the
// title stamped in the top left corner. Columns run left to right, rows
// top to bottom.
func WritePreviewPNG(w io.Writer, frame spectro.Frame, title string) error {
	rows, cols := frame.Dims()
	px := frame.Pixels()
	min, max := floats.Min(px), floats.Max(px)
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{cols, rows}})
	for y:=0; y<rows; y++ {
		for x:=0; x<cols; x++ {
			gray := gammaExpand((frame.At(y, x) - min) / span)
			v := uint16(gray * 65535.0)
			img.Set(x, y, color.RGBA64{v, v, v, 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 0.3, 0.3)
	dc.DrawString(title, 10, 20)
	return dc.EncodePNG(w)
}

// hdrFrame presents a frame as an hdr.Image. Counts are scaled so the
// brightest pixel is 1.0; negative counts (after dark subtraction) clamp
// to 0, RGBE can't hold them.
type hdrFrame struct {
	spectro.Frame
	scale float64
}

func newHDRFrame(frame spectro.Frame) hdrFrame {
	max := floats.Max(frame.Pixels())
	scale := 1.0
	if max > 0 {
		scale = 1.0 / max
	}
	return hdrFrame{Frame: frame, scale: scale}
}

// Implement image.Image
func (hf hdrFrame)ColorModel() color.Model  { return hdrcolor.RGBModel }
func (hf hdrFrame)Bounds() image.Rectangle  {
	rows, cols := hf.Dims()
	return image.Rectangle{Max: image.Point{cols, rows}}
}
func (hf hdrFrame)At(x, y int) color.Color  { return hf.HDRAt(x, y) }

// Implement hdr.Image
func (hf hdrFrame)HDRAt(x, y int) hdrcolor.Color {
	v := math.Max(0, hf.Frame.At(y, x) * hf.scale)
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (hf hdrFrame)Size() int { return hf.Bounds().Dx() * hf.Bounds().Dy() }

// WritePreviewHDR saves the frame as a Radiance RGBE file, which keeps the
// full dynamic range for inspection in an HDR viewer.
func WritePreviewHDR(w io.Writer, frame spectro.Frame) error {
	return rgbe.Encode(w, newHDRFrame(frame))
}
