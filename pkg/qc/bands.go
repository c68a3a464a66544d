package qc

import(
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/abworrall/arclamp/pkg/spectro"
)

// A Band shades the full height of the plot between two X values, with
// dashed edges, and an optional label along the top. Bands are not
// DataRangers, so they never change the axes.
type Band struct {
	Min, Max   float64
	Fill       color.Color
	draw.LineStyle

	Label      string
	LabelStyle draw.TextStyle
}

func (b Band)Plot(c draw.Canvas, p *plot.Plot) {
	trX, _ := p.Transforms(&c)
	x0, x1 := trX(b.Min), trX(b.Max)
	if x1 < c.Min.X || x0 > c.Max.X {
		return
	}
	if x0 < c.Min.X { x0 = c.Min.X }
	if x1 > c.Max.X { x1 = c.Max.X }

	c.FillPolygon(b.Fill, []vg.Point{
		{X: x0, Y: c.Min.Y},
		{X: x1, Y: c.Min.Y},
		{X: x1, Y: c.Max.Y},
		{X: x0, Y: c.Max.Y},
	})
	c.StrokeLine2(b.LineStyle, x0, c.Min.Y, x0, c.Max.Y)
	c.StrokeLine2(b.LineStyle, x1, c.Min.Y, x1, c.Max.Y)

	if b.Label != "" && b.LabelStyle.Handler != nil {
		c.FillText(b.LabelStyle, vg.Point{X: (x0 + x1) / 2, Y: c.Max.Y - vg.Points(2)}, b.Label)
	}
}

// BandColor spreads successive bands around the hue wheel, starting at
// red, with 60% opacity for the fill.
func BandColor(i int) (fill, edge color.Color) {
	hue := math.Mod(float64(i)*137.508, 360.0) // golden angle
	r, g, b := colorful.Hsv(hue, 0.85, 0.95).RGB255()
	er, eg, eb := colorful.Hsv(hue, 0.9, 0.6).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 153}, color.NRGBA{R: er, G: eg, B: eb, A: 0xff}
}

// PlotLineWindows draws the calibrated spectrum with every line window
// shaded over it. Windows from a line list with a name column are labelled.
func PlotLineWindows(wavelength, counts []float64, lines spectro.LineList, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Wavelength (Angstrom)"
	p.Y.Label.Text = "Flux"

	label := p.X.Tick.Label
	label.XAlign = draw.XCenter
	label.YAlign = draw.YTop

	for i, l := range lines {
		fill, edge := BandColor(i)
		p.Add(Band{
			Min:  l.Start,
			Max:  l.End,
			Fill: fill,
			LineStyle: draw.LineStyle{
				Color:  edge,
				Width:  vg.Points(1),
				Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
			},
			Label:      l.Name(),
			LabelStyle: label,
		})
	}

	// Trace last, so it sits on top of the bands
	l, err := trace(wavelength, counts)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}
