package report

import (
	"fmt"
	"image/color"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//PlotTrajectories draws the full trajectory of both players into a PNG, in image coordinates (y grows downwards)
func PlotTrajectories(path string, store *tracking.Store, colors map[tracking.Identity]color.RGBA) error {
	p := plot.New()
	p.Title.Text = "Player trajectories"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	for _, id := range tracking.Identities {
		positions := store.Positions(id)
		if len(positions) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(positions))
		for i, pos := range positions {
			pts[i] = plotter.XY{X: float64(pos.X), Y: float64(pos.Y)}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("PlotTrajectories: %w", err)
		}

		clr, ok := colors[id]
		if !ok {
			clr = color.RGBA{0, 0, 0, 255}
		}
		//overlay colors carry no alpha
		clr.A = 255
		line.Color = clr
		line.Width = vg.Points(1)

		p.Add(line)
		p.Legend.Add(id.Label(), line)
	}

	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("PlotTrajectories: Could not save '%s', got '%w'", path, err)
	}

	return nil
}
