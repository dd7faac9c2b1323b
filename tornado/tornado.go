package tornado

import (
	"fmt"
	"math"
	"sort"

	"github.com/pivolan/go_utils"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

// DefaultReference is the sensitivity used as the zero line when the caller
// does not pick one. rms_seed is the conventional seed sensitivity name in
// ensemble exports.
const DefaultReference = "rms_seed"

// TornadoData computes one low/high tornado bar per sensitivity from a flat
// list of realization records. All results are produced in the constructor;
// instances are never mutated afterwards.
type TornadoData struct {
	Reference  string
	Scale      models.Scale
	CutByRef   bool
	RefAverage float64
	Rows       []models.TornadoRow

	realRows []models.RealizationRow
}

func NewTornadoData(records []models.SensitivityRecord, reference string, scale models.Scale, cutByRef bool) (*TornadoData, error) {
	if reference == "" {
		reference = DefaultReference
	}
	if scale == "" {
		scale = models.ScalePercentage
	}
	if !go_utils.InArray(string(scale), []string{string(models.ScalePercentage), string(models.ScaleAbsolute)}) {
		return nil, fmt.Errorf("Unknown scale %s, expected Percentage or Absolute", scale)
	}

	names, groups, err := groupBySensitivity(records)
	if err != nil {
		return nil, err
	}
	if _, ok := groups[reference]; !ok {
		return nil, fmt.Errorf("Reference SENSNAME %s not in input data", reference)
	}

	t := &TornadoData{
		Reference: reference,
		Scale:     scale,
		CutByRef:  cutByRef,
	}
	t.RefAverage = calculateRefAverage(groups[reference])

	for _, name := range names {
		recs := groups[name]
		// a lone "ref" realization carries no spread, nothing to aggregate
		if name == "ref" && len(uniqueReals(recs)) == 1 {
			continue
		}
		aggs := t.aggregateSensitivity(name, recs)
		row, err := t.reduceToRow(name, aggs)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}

	if t.CutByRef {
		t.cutSensitivitiesByRef()
	}
	t.sortSensitivitiesByMax()
	t.buildRealRows(groups)
	return t, nil
}

// RealRows returns the per-realization case tagging used by scatter views.
func (t *TornadoData) RealRows() []models.RealizationRow {
	return t.realRows
}

func groupBySensitivity(records []models.SensitivityRecord) ([]string, map[string][]models.SensitivityRecord, error) {
	names := []string{}
	groups := map[string][]models.SensitivityRecord{}
	withCase := 0
	for _, rec := range records {
		if _, ok := groups[rec.SensName]; !ok {
			names = append(names, rec.SensName)
		}
		groups[rec.SensName] = append(groups[rec.SensName], rec)
		if rec.SensCase != "" {
			withCase++
		}
	}
	if withCase == 0 {
		return nil, nil, fmt.Errorf("No sensitivities found")
	}
	for _, name := range names {
		for _, rec := range groups[name] {
			if !go_utils.InArray(string(rec.SensType), []string{string(models.SensScalar), string(models.SensMonteCarlo)}) {
				return nil, nil, fmt.Errorf("Unknown SENSTYPE %s for sensitivity %s", rec.SensType, name)
			}
			if rec.SensType != groups[name][0].SensType {
				return nil, nil, fmt.Errorf("Sensitivity %s has both scalar and mc cases", name)
			}
		}
	}
	return names, groups, nil
}

func calculateRefAverage(recs []models.SensitivityRecord) float64 {
	sum := 0.0
	for _, rec := range recs {
		sum += rec.Value
	}
	return sum / float64(len(recs))
}

// scaleToRef converts a true response value to its delta against the
// reference average, as a percentage of the reference when Scale is
// Percentage (0 when the reference average is zero) or as-is otherwise.
func (t *TornadoData) scaleToRef(value float64) float64 {
	delta := value - t.RefAverage
	if t.Scale == models.ScalePercentage {
		if t.RefAverage == 0 {
			return 0
		}
		return 100 * delta / t.RefAverage
	}
	return delta
}

func (t *TornadoData) aggregateSensitivity(name string, recs []models.SensitivityRecord) []models.SensitivityAggregate {
	if recs[0].SensType == models.SensMonteCarlo {
		return t.aggregateMonteCarlo(name, recs)
	}
	return t.aggregateScalar(name, recs)
}

// aggregateScalar emits one aggregate per distinct case, in the order cases
// first appear in the input, with the case mean as the aggregate value.
func (t *TornadoData) aggregateScalar(name string, recs []models.SensitivityRecord) []models.SensitivityAggregate {
	caseOrder := []string{}
	caseValues := map[string][]float64{}
	caseReals := map[string][]int{}
	for _, rec := range recs {
		if _, ok := caseValues[rec.SensCase]; !ok {
			caseOrder = append(caseOrder, rec.SensCase)
		}
		caseValues[rec.SensCase] = append(caseValues[rec.SensCase], rec.Value)
		caseReals[rec.SensCase] = append(caseReals[rec.SensCase], rec.Real)
	}

	aggs := make([]models.SensitivityAggregate, 0, len(caseOrder))
	for _, senscase := range caseOrder {
		agg := models.SensitivityAggregate{
			SensName: name,
			SensCase: senscase,
			Values:   mean(caseValues[senscase]),
			Reals:    sortedInts(caseReals[senscase]),
		}
		agg.ValuesRef = t.scaleToRef(agg.Values)
		aggs = append(aggs, agg)
	}
	return aggs
}

// aggregateMonteCarlo emits exactly two aggregates. The P90 label carries the
// 10th percentile and P10 the 90th: oil-industry convention inverts the
// statistical index (P90 = low outcome). Realizations are split around the
// reference average.
func (t *TornadoData) aggregateMonteCarlo(name string, recs []models.SensitivityRecord) []models.SensitivityAggregate {
	values := make([]float64, 0, len(recs))
	for _, rec := range recs {
		values = append(values, rec.Value)
	}
	sort.Float64s(values)

	p90 := models.SensitivityAggregate{SensName: name, SensCase: "P90", Values: quantile(values, 0.10)}
	p10 := models.SensitivityAggregate{SensName: name, SensCase: "P10", Values: quantile(values, 0.90)}
	for _, rec := range recs {
		if rec.Value <= t.RefAverage {
			p90.Reals = append(p90.Reals, rec.Real)
		} else {
			p10.Reals = append(p10.Reals, rec.Real)
		}
	}
	p90.Reals = sortedInts(p90.Reals)
	p10.Reals = sortedInts(p10.Reals)
	p90.ValuesRef = t.scaleToRef(p90.Values)
	p10.ValuesRef = t.scaleToRef(p10.Values)
	return []models.SensitivityAggregate{p90, p10}
}

// reduceToRow picks the minimum and maximum scaled aggregate as the low and
// high side of the bar. A sensitivity with a single case gets a synthetic
// zero-valued counterpart on the unpopulated side.
func (t *TornadoData) reduceToRow(name string, aggs []models.SensitivityAggregate) (models.TornadoRow, error) {
	low := aggs[0]
	high := aggs[0]
	for _, agg := range aggs[1:] {
		if agg.ValuesRef < low.ValuesRef {
			low = agg
		}
		if agg.ValuesRef > high.ValuesRef {
			high = agg
		}
	}

	if low.SensCase == high.SensCase {
		if low.ValuesRef != high.ValuesRef {
			return models.TornadoRow{}, fmt.Errorf("Low and high differ for single-case sensitivity %s", name)
		}
		zeroSide := models.SensitivityAggregate{SensName: name, Values: t.RefAverage}
		if low.ValuesRef < 0 {
			high = zeroSide
		} else {
			low = zeroSide
		}
	}

	lowRef := low.ValuesRef
	highRef := high.ValuesRef
	return models.TornadoRow{
		SensName:    name,
		Low:         calcLowX(lowRef, highRef),
		LowBase:     calcLowBase(lowRef, highRef),
		LowLabel:    low.SensCase,
		LowTooltip:  low.ValuesRef,
		TrueLow:     low.Values,
		LowReals:    low.Reals,
		High:        calcHighX(lowRef, highRef),
		HighBase:    calcHighBase(lowRef, highRef),
		HighLabel:   high.SensCase,
		HighTooltip: high.ValuesRef,
		TrueHigh:    high.Values,
		HighReals:   high.Reals,
	}, nil
}

// Bar geometry. The four values define non-overlapping low/high segments
// for any sign combination of the scaled low/high pair.
func calcLowBase(low, high float64) float64 {
	if low < 0 {
		return math.Min(0, high)
	}
	return low
}

func calcHighBase(low, high float64) float64 {
	if high > 0 {
		return math.Max(0, low)
	}
	return high
}

func calcLowX(low, high float64) float64 {
	if low < 0 {
		return low - calcLowBase(low, high)
	}
	return 0
}

func calcHighX(low, high float64) float64 {
	if high > 0 {
		return high - calcHighBase(low, high)
	}
	return 0
}

// cutSensitivitiesByRef drops sensitivities whose bar has no width, keeping
// the reference row regardless.
func (t *TornadoData) cutSensitivitiesByRef() {
	kept := make([]models.TornadoRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Low == row.High && row.SensName != t.Reference {
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
}

// sortSensitivitiesByMax orders rows ascending by bar magnitude so the widest
// bars render on top, with the reference row always last.
func (t *TornadoData) sortSensitivitiesByMax() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return rowMagnitude(t.Rows[i]) < rowMagnitude(t.Rows[j])
	})
	ordered := make([]models.TornadoRow, 0, len(t.Rows))
	reference := []models.TornadoRow{}
	for _, row := range t.Rows {
		if row.SensName == t.Reference {
			reference = append(reference, row)
			continue
		}
		ordered = append(ordered, row)
	}
	t.Rows = append(ordered, reference...)
}

func rowMagnitude(row models.TornadoRow) float64 {
	return math.Max(math.Abs(row.Low), math.Abs(row.High))
}

// buildRealRows joins the low/high case membership back onto the original
// records, producing one labeled row per bucketed realization.
func (t *TornadoData) buildRealRows(groups map[string][]models.SensitivityRecord) {
	for _, row := range t.Rows {
		recs := groups[row.SensName]
		valueByReal := map[int]float64{}
		sensType := models.SensScalar
		for _, rec := range recs {
			valueByReal[rec.Real] = rec.Value
			sensType = rec.SensType
		}

		appendRows := func(reals []int, caseName, label string) {
			for _, real := range reals {
				t.realRows = append(t.realRows, models.RealizationRow{
					Real:     real,
					SensName: row.SensName,
					Case:     caseName,
					SensType: sensType,
					Label:    label,
					Value:    valueByReal[real],
				})
			}
		}
		if sensType == models.SensMonteCarlo {
			appendRows(row.LowReals, "mc", row.SensName)
			appendRows(row.HighReals, "mc", row.SensName)
		} else {
			appendRows(row.LowReals, "low", row.SensName+"--"+row.LowLabel)
			appendRows(row.HighReals, "high", row.SensName+"--"+row.HighLabel)
		}
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sortedInts(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

func uniqueReals(recs []models.SensitivityRecord) []int {
	seen := map[int]bool{}
	reals := []int{}
	for _, rec := range recs {
		if !seen[rec.Real] {
			seen[rec.Real] = true
			reals = append(reals, rec.Real)
		}
	}
	return reals
}
