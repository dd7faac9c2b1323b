package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

// dataTornadoForGraph renders a tornado as paired bars: for every
// sensitivity one bar for the low case magnitude and one for the high case.
type dataTornadoForGraph struct {
	rows      []models.TornadoRow
	nameYAxis string
	nameGraph string
}

func NewDataTornadoForGraph(rows []models.TornadoRow, nameYAxis, nameGraph string) dataTornadoForGraph {
	return dataTornadoForGraph{
		rows:      rows,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataTornadoForGraph) GetNameGraph() string {
	return d.nameGraph
}

func (d dataTornadoForGraph) getNameYAxis() string {
	return d.nameYAxis
}

func (d dataTornadoForGraph) getYValues() []float64 {
	values := make([]float64, 0, len(d.rows)*2)
	for _, row := range d.rows {
		values = append(values, math.Abs(row.Low), math.Abs(row.High))
	}
	return values
}

func (d dataTornadoForGraph) lenXValues() int {
	return len(d.rows) * 2
}

func (d dataTornadoForGraph) findMaxValue() float64 {
	max := 0.0
	for _, v := range d.getYValues() {
		if v > max {
			max = v
		}
	}
	return max
}

func (d dataTornadoForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.rows) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataTornadoForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for _, row := range d.rows {
		lowLabel := row.LowLabel
		if lowLabel == "" {
			lowLabel = "-"
		}
		highLabel := row.HighLabel
		if highLabel == "" {
			highLabel = "-"
		}
		bars = append(bars, chart.Value{
			Value: math.Abs(row.Low),
			Label: fmt.Sprintf("%s %s", row.SensName, lowLabel),
			Style: chart.Style{
				FillColor: drawing.ColorBlue.WithAlpha(100),
			},
		})
		bars = append(bars, chart.Value{
			Value: math.Abs(row.High),
			Label: fmt.Sprintf("%s %s", row.SensName, highLabel),
			Style: chart.Style{
				FillColor: drawing.ColorRed.WithAlpha(100),
			},
		})
	}
	return bars
}

func (d dataTornadoForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := d.findMaxValue()
	gridStep := calculateGridStep(max)
	if gridStep <= 0 {
		return ticks
	}
	for i := 0.0; i <= max; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf("%.1f", i),
		})
	}
	return ticks
}
