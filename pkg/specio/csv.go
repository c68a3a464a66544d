package specio

import(
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abworrall/arclamp/pkg/spectro"
)

const(
	ColLineStart = "line_start"
	ColLineEnd   = "line_end"
)

// MeasurementColumns is the header of a flux table, in order.
var MeasurementColumns = []string{"pixel", "Wavelength", "Flux"}

// ReadLineList reads a line list CSV. The header must name line_start and
// line_end; any other columns are kept on each Line as Extra.
func ReadLineList(r io.Reader) (spectro.LineList, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty line list, want %s,%s", spectro.ErrMissingColumn, ColLineStart, ColLineEnd)
	} else if err != nil {
		return nil, err
	}

	iStart, iEnd := -1, -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // byte order mark, from spreadsheet exports
		}
		header[i] = strings.TrimSpace(h)
		switch header[i] {
		case ColLineStart: iStart = i
		case ColLineEnd:   iEnd = i
		}
	}
	if iStart < 0 || iEnd < 0 {
		return nil, fmt.Errorf("%w: header %v, want %s and %s", spectro.ErrMissingColumn, header, ColLineStart, ColLineEnd)
	}

	lines := spectro.LineList{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		l := spectro.Line{}
		if l.Start, err = strconv.ParseFloat(strings.TrimSpace(rec[iStart]), 64); err != nil {
			return nil, fmt.Errorf("row %d: %s %q: %w", row, ColLineStart, rec[iStart], err)
		}
		if l.End, err = strconv.ParseFloat(strings.TrimSpace(rec[iEnd]), 64); err != nil {
			return nil, fmt.Errorf("row %d: %s %q: %w", row, ColLineEnd, rec[iEnd], err)
		}
		for i, v := range rec {
			if i == iStart || i == iEnd {
				continue
			}
			if l.Extra == nil {
				l.Extra = map[string]string{}
			}
			l.Extra[header[i]] = v
		}
		lines = append(lines, l)
	}

	return lines, nil
}

// WriteMeasurements writes the flux table: pixel, Wavelength, Flux, one row
// per line in line list order.
func WriteMeasurements(w io.Writer, ms []spectro.LineMeasurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MeasurementColumns); err != nil {
		return err
	}

	for _, m := range ms {
		rec := []string{
			strconv.Itoa(m.Pixel),
			strconv.FormatFloat(m.Wavelength, 'g', -1, 64),
			strconv.FormatFloat(m.Flux, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
