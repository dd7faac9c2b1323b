package tornado

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	colorLow         = "#1f77b4"
	colorHigh        = "#d62728"
	colorTransparent = "rgba(0,0,0,0)"
)

// NewTornadoBarChart builds the interactive tornado chart for the web
// dashboard. Each sensitivity gets a low and a high bar placed on invisible
// base segments, so the segments line up without overlapping whatever the
// sign of the scaled deltas.
func NewTornadoBarChart(data *TornadoData, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("reference %s, scale %s", data.Reference, data.Scale),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(data.Rows))
	lowBase := make([]opts.BarData, 0, len(data.Rows))
	lowBars := make([]opts.BarData, 0, len(data.Rows))
	highBase := make([]opts.BarData, 0, len(data.Rows))
	highBars := make([]opts.BarData, 0, len(data.Rows))
	for _, row := range data.Rows {
		names = append(names, row.SensName)
		lowBase = append(lowBase, opts.BarData{Value: row.LowBase})
		lowBars = append(lowBars, opts.BarData{
			Name:  fmt.Sprintf("%s %s: %s", row.SensName, row.LowLabel, SIFormat(row.TrueLow)),
			Value: row.Low,
		})
		highBase = append(highBase, opts.BarData{Value: row.HighBase})
		highBars = append(highBars, opts.BarData{
			Name:  fmt.Sprintf("%s %s: %s", row.SensName, row.HighLabel, SIFormat(row.TrueHigh)),
			Value: row.High,
		})
	}

	bar.SetXAxis(names).
		AddSeries("low base", lowBase,
			charts.WithBarChartOpts(opts.BarChart{Stack: "low"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorTransparent}),
		).
		AddSeries("low", lowBars,
			charts.WithBarChartOpts(opts.BarChart{Stack: "low"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLow}),
		).
		AddSeries("high base", highBase,
			charts.WithBarChartOpts(opts.BarChart{Stack: "high"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorTransparent}),
		).
		AddSeries("high", highBars,
			charts.WithBarChartOpts(opts.BarChart{Stack: "high"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorHigh}),
		)
	bar.XYReversal()
	return bar
}
