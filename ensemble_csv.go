package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

const SEPARATOR = ','

var requiredColumns = []string{"REAL", "SENSNAME", "SENSCASE", "SENSTYPE", "VALUE"}

func parseEnsembleFile(filePath string) ([]models.SensitivityRecord, error) {
	f, err := os.OpenFile(filePath, os.O_RDONLY, 0655)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseEnsembleCSV(f)
}

// parseEnsembleCSV reads an ensemble export into records. The header must
// carry the five required columns; extra columns are ignored.
func parseEnsembleCSV(r io.Reader) ([]models.SensitivityRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = SEPARATOR
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header row: %v", err)
	}
	index := map[string]int{}
	for i, header := range headers {
		index[normalizeHeader(header)] = i
	}
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("missing required column %s", column)
		}
	}

	records := []models.SensitivityRecord{}
	line := 1
	for {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read error on line %d: %v", line+1, err)
		}
		line++

		realNo, err := strconv.Atoi(strings.TrimSpace(values[index["REAL"]]))
		if err != nil {
			return nil, fmt.Errorf("bad REAL on line %d: %v", line, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(values[index["VALUE"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad VALUE on line %d: %v", line, err)
		}
		sensType := strings.ToLower(strings.TrimSpace(values[index["SENSTYPE"]]))
		if !go_utils.InArray(sensType, []string{string(models.SensScalar), string(models.SensMonteCarlo)}) {
			return nil, fmt.Errorf("unknown SENSTYPE %q on line %d", values[index["SENSTYPE"]], line)
		}

		records = append(records, models.SensitivityRecord{
			Real:     realNo,
			SensName: sanitizeName(values[index["SENSNAME"]]),
			SensCase: sanitizeName(values[index["SENSCASE"]]),
			SensType: models.SensitivityType(sensType),
			Value:    value,
		})
	}
	return records, nil
}

func normalizeHeader(header string) string {
	return strings.ToUpper(replaceSpecialSymbols(unidecode.Unidecode(header)))
}

// sanitizeName transliterates sensitivity and case names to ASCII so they
// survive chart labels and table names unchanged.
func sanitizeName(name string) string {
	return strings.TrimSpace(unidecode.Unidecode(name))
}
