package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates new plot of the simulation from the three data sources:
// model:   simulated core temperature
// measure: core temperature inverted from raw heart rate
// filter:  filter estimates
// Each source stores (step, core temperature) rows.
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * either of the supplied data matrices is nil
// * either of the supplied data matrices does not have at least 2 columns
// * gonum plot fails to be created
func New2DPlot(model, measure, filter *mat.Dense) (*plot.Plot, error) {
	if model == nil || measure == nil || filter == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, cmd := model.Dims()
	_, cms := measure.Dims()
	_, cmf := filter.Dims()

	if cmd < 2 || cms < 2 || cmf < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Core temperature"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "CT [°C]"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	modelLine, err := plotter.NewLine(makePoints(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create model line: %v", err)
	}
	modelLine.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	modelLine.LineStyle.Width = vg.Points(2)

	p.Add(modelLine)
	p.Legend.Add("model", modelLine)

	measScatter, err := plotter.NewScatter(makePoints(measure))
	if err != nil {
		return nil, fmt.Errorf("failed to create measurement scatter: %v", err)
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.Shape = draw.CrossGlyph{}
	measScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	filterLine, err := plotter.NewLine(makePoints(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter line: %v", err)
	}
	filterLine.LineStyle.Color = color.RGBA{R: 64, G: 64, B: 192, A: 255}
	filterLine.LineStyle.Width = vg.Points(1.5)

	p.Add(filterLine)
	p.Legend.Add("filtered", filterLine)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
