package qc

import(
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a one-line health check of a spectrum.
type Summary struct {
	N         int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	PeakPixel int

	// Percentiles of the non-negative counts, to 3 significant figures
	P50, P90, P99 int64
	Negative      int // pixels with negative counts, after dark subtraction
}

func (s Summary)String() string {
	return fmt.Sprintf("n=%d mean=%.1f sd=%.1f min=%.1f max=%.1f@%d p50/90/99=%d/%d/%d neg=%d",
		s.N, s.Mean, s.StdDev, s.Min, s.Max, s.PeakPixel, s.P50, s.P90, s.P99, s.Negative)
}

// Summarize computes the stats for data. An empty slice gives a zero Summary.
func Summarize(data []float64) Summary {
	s := Summary{N: len(data), PeakPixel: -1}
	if len(data) == 0 {
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	if len(data) == 1 {
		s.StdDev = 0
	}
	s.Min = floats.Min(data)
	s.PeakPixel = floats.MaxIdx(data)
	s.Max = data[s.PeakPixel]

	top := int64(math.Ceil(s.Max))
	if top < 2 {
		top = 2
	}
	h := hdrhistogram.New(1, top, 3)
	for _, v := range data {
		if v < 0 {
			s.Negative++
			continue
		}
		// Values below 1 share the bottom bucket
		h.RecordValue(int64(math.Max(1, math.Round(v))))
	}
	if h.TotalCount() > 0 {
		s.P50 = h.ValueAtQuantile(50)
		s.P90 = h.ValueAtQuantile(90)
		s.P99 = h.ValueAtQuantile(99)
	}

	return s
}
