package plot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	mstats "github.com/montanaflynn/stats"

	"liwclens/internal/errors"
)

// violinHalfWidth is the widest half-extent of a violin body in x units.
const violinHalfWidth = 0.4

var meanMarkerColor = color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF} // gold

// AddViolin draws a violin body at x position loc with a thin box plot and a
// mean marker overlaid. Values must be non-empty.
func AddViolin(p *plot.Plot, loc float64, values []float64, c color.RGBA) error {
	if len(values) == 0 {
		return errors.InvalidInput("cannot draw a violin for an empty group")
	}

	grid, density := densityCurve(values)
	maxD := 0.0
	for _, d := range density {
		if d > maxD {
			maxD = d
		}
	}
	if maxD == 0 {
		maxD = 1
	}

	// Mirror the density curve around loc to form the violin outline.
	outline := make(plotter.XYs, 0, 2*len(grid))
	for i := range grid {
		outline = append(outline, plotter.XY{
			X: loc - density[i]/maxD*violinHalfWidth,
			Y: grid[i],
		})
	}
	for i := len(grid) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{
			X: loc + density[i]/maxD*violinHalfWidth,
			Y: grid[i],
		})
	}

	body, err := plotter.NewPolygon(outline)
	if err != nil {
		return errors.Wrap(err, "violin body")
	}
	body.Color = Translucent(c, 0xB0)
	body.LineStyle.Color = c
	body.LineStyle.Width = vg.Points(1)
	p.Add(body)

	box, err := plotter.NewBoxPlot(vg.Points(6), loc, plotter.Values(values))
	if err != nil {
		return errors.Wrap(err, "violin box overlay")
	}
	box.FillColor = color.White
	p.Add(box)

	mean, err := mstats.Mean(values)
	if err != nil {
		return errors.Wrap(err, "violin mean marker")
	}
	marker, err := plotter.NewScatter(plotter.XYs{{X: loc, Y: mean}})
	if err != nil {
		return errors.Wrap(err, "violin mean marker")
	}
	marker.GlyphStyle = draw.GlyphStyle{
		Color:  meanMarkerColor,
		Radius: vg.Points(3.5),
		Shape:  draw.SquareGlyph{},
	}
	p.Add(marker)

	return nil
}
