package spectro

import(
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Frame is a 2D CCD readout. Rows run along the slit (the spatial
// direction), columns along the dispersion direction, so a column is
// one detector pixel of the eventual 1D spectrum.
type Frame struct {
	LoadFilename    string
	ExposureSeconds float64 // From the file's own metadata (EXPTIME, EXIF); 0 if it has none
	*mat.Dense
}

// NewFrame wraps row-major pixel data; data is not copied.
func NewFrame(rows, cols int, data []float64) (Frame, error) {
	if rows <= 0 || cols <= 0 {
		return Frame{}, fmt.Errorf("%w: empty frame %dx%d", ErrShapeMismatch, rows, cols)
	}
	if len(data) != rows*cols {
		return Frame{}, fmt.Errorf("%w: %d values for a %dx%d frame", ErrShapeMismatch, len(data), rows, cols)
	}
	return Frame{Dense: mat.NewDense(rows, cols, data)}, nil
}

func (f Frame)Filename() string { return filepath.Base(f.LoadFilename) }

func (f Frame)String() string {
	r, c := f.Dims()
	return fmt.Sprintf("%s: %d rows x %d cols", f.Filename(), r, c)
}

// Pixels returns a row-major copy of the frame's values.
func (f Frame)Pixels() []float64 {
	r, c := f.Dims()
	out := make([]float64, 0, r*c)
	for i:=0; i<r; i++ {
		out = append(out, f.RawRowView(i)...)
	}
	return out
}

func sameShape(a, b Frame) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%w: %s is %dx%d, %s is %dx%d",
			ErrShapeMismatch, a.Filename(), ar, ac, b.Filename(), br, bc)
	}
	return nil
}

// Subtract returns a new frame, f - dark.
func (f Frame)Subtract(dark Frame) (Frame, error) {
	if f.Dense == nil || dark.Dense == nil {
		return Frame{}, fmt.Errorf("%w: frame not loaded", ErrShapeMismatch)
	}
	if err := sameShape(f, dark); err != nil {
		return Frame{}, err
	}

	var out mat.Dense
	out.Sub(f.Dense, dark.Dense)
	return Frame{LoadFilename: f.LoadFilename, ExposureSeconds: f.ExposureSeconds, Dense: &out}, nil
}

// SumSpatial dark-subtracts the frame and collapses it along the slit,
// giving one summed count per detector column.
func SumSpatial(frame, dark Frame) ([]float64, error) {
	sub, err := frame.Subtract(dark)
	if err != nil {
		return nil, err
	}

	rows, cols := sub.Dims()
	out := make([]float64, cols)
	col := make([]float64, rows)
	for j:=0; j<cols; j++ {
		mat.Col(col, j, sub)
		out[j] = floats.Sum(col)
	}
	return out, nil
}
