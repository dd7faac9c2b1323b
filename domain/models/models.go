package models

type EnsembleTableName string

type SensitivityType string

const (
	SensScalar     SensitivityType = "scalar"
	SensMonteCarlo SensitivityType = "mc"
)

type Scale string

const (
	ScalePercentage Scale = "Percentage"
	ScaleAbsolute   Scale = "Absolute"
)

type ColumnInfo struct {
	Name string
	Type string //Date DateTime64 Int64 Float64
}

// SensitivityRecord is one realization's response value for one sensitivity case.
type SensitivityRecord struct {
	Real     int             `db:"real"`
	SensName string          `db:"sensname"`
	SensCase string          `db:"senscase"`
	SensType SensitivityType `db:"senstype"`
	Value    float64         `db:"value"`
}

// SensitivityAggregate is one aggregated case within a sensitivity: a per-case
// mean for scalar sensitivities or a P10/P90 quantile for monte-carlo ones.
// ValuesRef holds the value scaled relative to the reference average.
type SensitivityAggregate struct {
	SensName  string
	SensCase  string
	Values    float64
	ValuesRef float64
	Reals     []int
}

// TornadoRow is the final reduction for one sensitivity: one low and one high
// bar. Low and High are bar lengths relative to their bases, not true values.
type TornadoRow struct {
	SensName    string
	Low         float64
	LowBase     float64
	LowLabel    string
	LowTooltip  float64
	TrueLow     float64
	LowReals    []int
	High        float64
	HighBase    float64
	HighLabel   string
	HighTooltip float64
	TrueHigh    float64
	HighReals   []int
}

// RealizationRow tags a single realization with the case bucket it landed in,
// for scatter plot coloring. Case is "low", "high" or "mc".
type RealizationRow struct {
	Real     int
	SensName string
	Case     string
	SensType SensitivityType
	Label    string
	Value    float64
}
