package tornado

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

// TornadoTable renders a TornadoData as a text table, one row per
// sensitivity with the low and high case side by side.
type TornadoTable struct {
	data *TornadoData
}

func NewTornadoTable(data *TornadoData) TornadoTable {
	return TornadoTable{data: data}
}

func (t TornadoTable) Rows() []table.Row {
	rows := make([]table.Row, 0, len(t.data.Rows))
	for _, row := range t.data.Rows {
		rows = append(rows, table.Row{
			row.SensName,
			row.LowLabel,
			SIFormat(row.TrueLow),
			t.formatDelta(row.LowTooltip),
			PrintableIntList(row.LowReals),
			row.HighLabel,
			SIFormat(row.TrueHigh),
			t.formatDelta(row.HighTooltip),
			PrintableIntList(row.HighReals),
		})
	}
	return rows
}

// formatDelta renders a scaled delta with a percent sign when the tornado was
// computed on a percentage scale.
func (t TornadoTable) formatDelta(value float64) string {
	if t.data.Scale == models.ScalePercentage {
		return fmt.Sprintf("%.2f %%", value)
	}
	return SIFormat(value)
}

func (t TornadoTable) Render() string {
	w := table.NewWriter()
	w.AppendHeader(table.Row{
		"Sensitivity",
		"Case low", "True low", "Delta low", "Reals low",
		"Case high", "True high", "Delta high", "Reals high",
	})
	w.AppendRows(t.Rows())
	w.SetStyle(table.StyleDefault)
	return w.Render()
}
