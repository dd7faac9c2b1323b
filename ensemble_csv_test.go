package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

func TestParseEnsembleCSV(t *testing.T) {
	input := `REAL,SENSNAME,SENSCASE,SENSTYPE,VALUE,EXTRA
0,faults,low,scalar,1500.5,x
1,faults,high,scalar, 1700 ,y
2,seed,p10_p90,MC,1600,z`

	records, err := parseEnsembleCSV(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, models.SensitivityRecord{
		Real: 0, SensName: "faults", SensCase: "low", SensType: models.SensScalar, Value: 1500.5,
	}, records[0])
	assert.Equal(t, 1700.0, records[1].Value)
	assert.Equal(t, models.SensMonteCarlo, records[2].SensType)
}

func TestParseEnsembleCSVHeaderNormalization(t *testing.T) {
	input := `real,SENSNÄME, senscase ,SensType,value
0,faults,low,scalar,1`

	records, err := parseEnsembleCSV(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "faults", records[0].SensName)
}

func TestParseEnsembleCSVMissingColumn(t *testing.T) {
	input := `REAL,SENSNAME,SENSCASE,SENSTYPE
0,faults,low,scalar`

	_, err := parseEnsembleCSV(strings.NewReader(input))
	assert.EqualError(t, err, "missing required column VALUE")
}

func TestParseEnsembleCSVBadValues(t *testing.T) {
	_, err := parseEnsembleCSV(strings.NewReader("REAL,SENSNAME,SENSCASE,SENSTYPE,VALUE\nx,faults,low,scalar,1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad REAL")

	_, err = parseEnsembleCSV(strings.NewReader("REAL,SENSNAME,SENSCASE,SENSTYPE,VALUE\n0,faults,low,scalar,abc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad VALUE")

	_, err = parseEnsembleCSV(strings.NewReader("REAL,SENSNAME,SENSCASE,SENSTYPE,VALUE\n0,faults,low,weird,1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown SENSTYPE")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Ostlig forkastning", sanitizeName(" Østlig forkastning "))
	assert.Equal(t, "faults", sanitizeName("faults"))
}

func TestReplaceSpecialSymbols(t *testing.T) {
	assert.Equal(t, "design_2026_08_csv", replaceSpecialSymbols("design 2026-08.csv"))
	assert.Equal(t, "a_b", replaceSpecialSymbols("a..b"))
	assert.Equal(t, "abc", replaceSpecialSymbols("_abc_"))
}

func TestEnsembleTableName(t *testing.T) {
	name := ensembleTableName("Design ensemble 2026.csv")
	assert.Regexp(t, "^tornado_design_ensemble_2026_csv_[0-9a-f]{6}$", string(name))

	long := ensembleTableName(strings.Repeat("x", 100) + ".csv")
	assert.LessOrEqual(t, len(long), len("tornado_")+40+7)

	empty := ensembleTableName("...")
	assert.Regexp(t, "^tornado_ensemble_[0-9a-f]{6}$", string(empty))
}
