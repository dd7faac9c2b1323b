package tornado

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

// Eight realizations across four sensitivities: A and D are monte-carlo,
// B and C scalar. With reference A the reference average is 15.0.
func testRecords() []models.SensitivityRecord {
	return []models.SensitivityRecord{
		{Real: 0, SensName: "A", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 10},
		{Real: 1, SensName: "A", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 20},
		{Real: 2, SensName: "B", SensCase: "low", SensType: models.SensScalar, Value: 12},
		{Real: 3, SensName: "B", SensCase: "high", SensType: models.SensScalar, Value: 18},
		{Real: 4, SensName: "C", SensCase: "low", SensType: models.SensScalar, Value: 14},
		{Real: 5, SensName: "C", SensCase: "high", SensType: models.SensScalar, Value: 16},
		{Real: 6, SensName: "D", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 9},
		{Real: 7, SensName: "D", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 23},
	}
}

func rowByName(t *testing.T, data *TornadoData, name string) models.TornadoRow {
	t.Helper()
	for _, row := range data.Rows {
		if row.SensName == name {
			return row
		}
	}
	t.Fatalf("no row for sensitivity %s", name)
	return models.TornadoRow{}
}

func TestReferenceAverage(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)
	assert.Equal(t, 15.0, data.RefAverage)
}

func TestMonteCarloAggregates(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	// P90 label carries the 10th percentile, P10 the 90th
	row := rowByName(t, data, "A")
	assert.Equal(t, "P90", row.LowLabel)
	assert.Equal(t, 11.0, row.TrueLow)
	assert.InDelta(t, -26.667, row.LowTooltip, 0.001)
	assert.Equal(t, []int{0}, row.LowReals)

	assert.Equal(t, "P10", row.HighLabel)
	assert.Equal(t, 19.0, row.TrueHigh)
	assert.InDelta(t, 26.667, row.HighTooltip, 0.001)
	assert.Equal(t, []int{1}, row.HighReals)
}

func TestScalarAggregates(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	row := rowByName(t, data, "B")
	assert.Equal(t, "low", row.LowLabel)
	assert.Equal(t, 12.0, row.TrueLow)
	assert.InDelta(t, -20.0, row.LowTooltip, 1e-9)
	assert.Equal(t, []int{2}, row.LowReals)
	assert.Equal(t, "high", row.HighLabel)
	assert.Equal(t, 18.0, row.TrueHigh)
	assert.InDelta(t, 20.0, row.HighTooltip, 1e-9)
	assert.Equal(t, []int{3}, row.HighReals)
}

func TestAbsoluteScale(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScaleAbsolute, false)
	assert.NoError(t, err)

	row := rowByName(t, data, "B")
	assert.InDelta(t, -3.0, row.LowTooltip, 1e-9)
	assert.InDelta(t, 3.0, row.HighTooltip, 1e-9)
}

func TestZeroReferenceAveragePercentage(t *testing.T) {
	records := []models.SensitivityRecord{
		{Real: 0, SensName: "seed", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: -5},
		{Real: 1, SensName: "seed", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 5},
		{Real: 2, SensName: "B", SensCase: "low", SensType: models.SensScalar, Value: 1},
	}
	data, err := NewTornadoData(records, "seed", models.ScalePercentage, false)
	assert.NoError(t, err)

	row := rowByName(t, data, "B")
	assert.Equal(t, 0.0, row.LowTooltip)
	assert.Equal(t, 0.0, row.HighTooltip)
}

func TestBarGeometryFunctions(t *testing.T) {
	cases := []struct {
		low, high                      float64
		lowBase, lowX, highBase, highX float64
	}{
		{-5, 3, 0, -5, 0, 3},
		{2, 5, 2, 0, 2, 3},
		{-7, -2, -2, -5, -2, 0},
		{0, 0, 0, 0, 0, 0},
		{-4, 0, 0, -4, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.lowBase, calcLowBase(c.low, c.high), "lowBase(%v,%v)", c.low, c.high)
		assert.Equal(t, c.lowX, calcLowX(c.low, c.high), "lowX(%v,%v)", c.low, c.high)
		assert.Equal(t, c.highBase, calcHighBase(c.low, c.high), "highBase(%v,%v)", c.low, c.high)
		assert.Equal(t, c.highX, calcHighX(c.low, c.high), "highX(%v,%v)", c.low, c.high)
	}
}

func TestBarSegmentsNeverOverlap(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	for _, row := range data.Rows {
		// low segment is [LowBase+Low, LowBase], high is [HighBase, HighBase+High]
		assert.LessOrEqual(t, row.Low, 0.0, row.SensName)
		assert.GreaterOrEqual(t, row.High, 0.0, row.SensName)
		assert.LessOrEqual(t, row.LowBase, row.HighBase, row.SensName)
	}
}

func TestSortOrder(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	names := []string{}
	for _, row := range data.Rows {
		names = append(names, row.SensName)
	}
	// ascending magnitude, reference always last
	assert.Equal(t, []string{"C", "B", "D", "A"}, names)

	previous := 0.0
	for _, row := range data.Rows[:len(data.Rows)-1] {
		magnitude := rowMagnitude(row)
		assert.GreaterOrEqual(t, magnitude, previous)
		previous = magnitude
	}
}

func TestCutByRef(t *testing.T) {
	records := append(testRecords(),
		// single case matching the reference average exactly: zero bar width
		models.SensitivityRecord{Real: 8, SensName: "E", SensCase: "static", SensType: models.SensScalar, Value: 15},
	)

	data, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.NoError(t, err)
	assert.Len(t, data.Rows, 5)

	data, err = NewTornadoData(records, "A", models.ScalePercentage, true)
	assert.NoError(t, err)
	names := []string{}
	for _, row := range data.Rows {
		names = append(names, row.SensName)
	}
	assert.NotContains(t, names, "E")
	assert.Contains(t, names, "A")
}

func TestSingleCaseSynthesizesZeroSide(t *testing.T) {
	records := append(testRecords(),
		models.SensitivityRecord{Real: 8, SensName: "E", SensCase: "static", SensType: models.SensScalar, Value: 12},
	)
	data, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	row := rowByName(t, data, "E")
	assert.Equal(t, "static", row.LowLabel)
	assert.InDelta(t, -20.0, row.LowTooltip, 1e-9)
	assert.Equal(t, []int{8}, row.LowReals)
	// the high side is synthetic: no case, no realizations, reference value
	assert.Equal(t, "", row.HighLabel)
	assert.Equal(t, 0.0, row.HighTooltip)
	assert.Equal(t, 15.0, row.TrueHigh)
	assert.Empty(t, row.HighReals)
	assert.Equal(t, 0.0, row.High)
}

func TestSingleCaseAboveReference(t *testing.T) {
	records := append(testRecords(),
		models.SensitivityRecord{Real: 8, SensName: "E", SensCase: "static", SensType: models.SensScalar, Value: 21},
	)
	data, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	row := rowByName(t, data, "E")
	assert.Equal(t, "", row.LowLabel)
	assert.Equal(t, 0.0, row.Low)
	assert.Equal(t, "static", row.HighLabel)
	assert.InDelta(t, 40.0, row.HighTooltip, 1e-9)
}

func TestReferenceMissing(t *testing.T) {
	_, err := NewTornadoData(testRecords(), "X", models.ScalePercentage, false)
	assert.EqualError(t, err, "Reference SENSNAME X not in input data")
}

func TestNoSensitivities(t *testing.T) {
	records := []models.SensitivityRecord{
		{Real: 0, SensName: "A", SensCase: "", SensType: models.SensScalar, Value: 1},
		{Real: 1, SensName: "A", SensCase: "", SensType: models.SensScalar, Value: 2},
	}
	_, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.EqualError(t, err, "No sensitivities found")
}

func TestMixedSensitivityTypes(t *testing.T) {
	records := append(testRecords(),
		models.SensitivityRecord{Real: 8, SensName: "A", SensCase: "extra", SensType: models.SensScalar, Value: 12},
	)
	_, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "has both scalar and mc")
}

func TestRefSingleRealizationSkipped(t *testing.T) {
	records := append(testRecords(),
		models.SensitivityRecord{Real: 8, SensName: "ref", SensCase: "ref", SensType: models.SensScalar, Value: 15},
	)
	data, err := NewTornadoData(records, "A", models.ScalePercentage, false)
	assert.NoError(t, err)
	for _, row := range data.Rows {
		assert.NotEqual(t, "ref", row.SensName)
	}
}

func TestDefaultsApplied(t *testing.T) {
	records := []models.SensitivityRecord{
		{Real: 0, SensName: "rms_seed", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 10},
		{Real: 1, SensName: "rms_seed", SensCase: "p10_p90", SensType: models.SensMonteCarlo, Value: 20},
	}
	data, err := NewTornadoData(records, "", "", true)
	assert.NoError(t, err)
	assert.Equal(t, DefaultReference, data.Reference)
	assert.Equal(t, models.ScalePercentage, data.Scale)
}

func TestUnknownScale(t *testing.T) {
	_, err := NewTornadoData(testRecords(), "A", "Relative", false)
	assert.Error(t, err)
}

func TestRealRows(t *testing.T) {
	data, err := NewTornadoData(testRecords(), "A", models.ScalePercentage, false)
	assert.NoError(t, err)

	byReal := map[int]models.RealizationRow{}
	for _, row := range data.RealRows() {
		byReal[row.Real] = row
	}
	assert.Len(t, byReal, 8)

	assert.Equal(t, "low", byReal[2].Case)
	assert.Equal(t, "B--low", byReal[2].Label)
	assert.Equal(t, 12.0, byReal[2].Value)
	assert.Equal(t, "high", byReal[3].Case)
	assert.Equal(t, "B--high", byReal[3].Label)

	assert.Equal(t, "mc", byReal[0].Case)
	assert.Equal(t, "A", byReal[0].Label)
	assert.Equal(t, models.SensMonteCarlo, byReal[0].SensType)
	assert.Equal(t, "mc", byReal[7].Case)
	assert.Equal(t, "D", byReal[7].Label)
	assert.Equal(t, 23.0, byReal[7].Value)
}
