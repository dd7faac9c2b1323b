package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// DrawPlotBar renders the bar values of a graph data source as a PNG.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		FontSize:    160,
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: findMaxValue(data.getYValues()),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

// calculateGridStep picks a grid step so axis labels land on round numbers.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return int(count * 8)
}
