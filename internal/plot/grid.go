package plot

import (
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"liwclens/internal/errors"
)

var highlightColor = color.RGBA{R: 0xD6, G: 0x2B, B: 0x2B, A: 0xFF}

// Panel is one cell of a figure grid. A nil Plot leaves the cell blank.
// Highlight frames the cell in red, used to mark significant results.
type Panel struct {
	Plot      *plot.Plot
	Highlight bool
}

// RenderGrid draws the panels into a rows x cols grid and writes the result
// as a PNG. Panels are indexed [row][col] with row 0 at the top.
func RenderGrid(panels [][]Panel, width, height vg.Length, path string) error {
	rows := len(panels)
	if rows == 0 {
		return errors.InvalidInput("grid has no panels")
	}
	cols := 0
	for _, r := range panels {
		if len(r) > cols {
			cols = len(r)
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(width, height))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Points(12),
		PadY:      vg.Points(12),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < len(panels[row]); col++ {
			panel := panels[row][col]
			if panel.Plot == nil {
				continue
			}
			sub := tiles.At(dc, col, row)
			panel.Plot.Draw(sub)
			if panel.Highlight {
				frame(dc, sub, highlightColor)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WriteError(path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return errors.RenderError(path, err)
	}
	return nil
}

// frame strokes a rectangle around a subcanvas
func frame(dc draw.Canvas, sub draw.Canvas, c color.RGBA) {
	style := draw.LineStyle{Color: c, Width: vg.Points(3)}
	min, max := sub.Rectangle.Min, sub.Rectangle.Max
	dc.StrokeLines(style, []vg.Point{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
		{X: min.X, Y: min.Y},
	})
}
