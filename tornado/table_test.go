package tornado

import (
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

func TestTornadoTableRows(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	rows := NewTornadoTable(data).Rows()
	assert.Len(t, rows, 4)

	var rowB table.Row
	for _, row := range rows {
		if row[0] == "B" {
			rowB = row
		}
	}
	assert.Equal(t, table.Row{
		"B",
		"low", "12", "-20.00 %", "2",
		"high", "18", "20.00 %", "3",
	}, rowB)
}

func TestTornadoTableRowsAbsolute(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScaleAbsolute, false)
	assert.NoError(t, err)

	rows := NewTornadoTable(data).Rows()
	for _, row := range rows {
		if row[0] == "B" {
			assert.Equal(t, "-3", row[3])
			assert.Equal(t, "3", row[7])
		}
	}
}

func TestTornadoTableRender(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	out := NewTornadoTable(data).Render()
	assert.Contains(t, out, "SENSITIVITY")
	assert.Contains(t, out, "DELTA LOW")
	assert.Contains(t, out, "-20.00 %")
	assert.Contains(t, out, "P90")
	assert.Contains(t, out, "P10")
}
