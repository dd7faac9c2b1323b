package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"gorm.io/gorm"

	"github.com/pivolan/tornado_analyzer/domain/models"
)

// importEnsembleIntoClickHouse stores a parsed ensemble in its own table so
// the dashboard can re-analyze it later without re-uploading.
func importEnsembleIntoClickHouse(db *gorm.DB, records []models.SensitivityRecord, sourceName string) (models.EnsembleTableName, error) {
	tableName := ensembleTableName(sourceName)

	tx := db.Exec("DROP TABLE IF EXISTS " + string(tableName))
	if tx.Error != nil {
		return "", tx.Error
	}
	sql := `CREATE TABLE ` + string(tableName) + ` (
real Int64,
sensname String,
senscase String,
senstype String,
value Float64
) ENGINE = ReplacingMergeTree PRIMARY KEY (real, sensname, senscase) SETTINGS index_granularity = 8192`
	tx = db.Exec(sql)
	if tx.Error != nil {
		return "", tx.Error
	}

	b := bytes.NewBufferString("")
	csvWriter := csv.NewWriter(b)
	flush := func() error {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return err
		}
		if b.Len() == 0 {
			return nil
		}
		sql := fmt.Sprintf("INSERT INTO "+string(tableName)+" FORMAT CSV \n%s", b.String())
		b.Reset()
		tx := db.Exec(sql)
		return tx.Error
	}
	for i, rec := range records {
		csvWriter.Write(recordCSVFields(rec))
		if i%5000 == 4999 {
			if err := flush(); err != nil {
				return "", err
			}
		}
	}
	if err := flush(); err != nil {
		return "", err
	}
	return tableName, nil
}

// recordCSVFields renders one record as a FORMAT CSV line, with strings
// sanitized and single-quoted for ClickHouse.
func recordCSVFields(rec models.SensitivityRecord) []string {
	return []string{
		strconv.Itoa(rec.Real),
		"'" + replaceSpecialSymbols(rec.SensName) + "'",
		"'" + replaceSpecialSymbols(rec.SensCase) + "'",
		"'" + string(rec.SensType) + "'",
		strconv.FormatFloat(rec.Value, 'f', -1, 64),
	}
}

func ensembleTableName(sourceName string) models.EnsembleTableName {
	base := strings.ToLower(replaceSpecialSymbols(unidecode.Unidecode(sourceName)))
	if base == "" {
		base = "ensemble"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return models.EnsembleTableName("tornado_" + base + "_" + getMD5String(sourceName)[:6])
}

func loadEnsembleFromClickHouse(db *gorm.DB, tableName models.EnsembleTableName) ([]models.SensitivityRecord, error) {
	records := []models.SensitivityRecord{}
	tx := db.Raw("SELECT real, sensname, senscase, senstype, value FROM " + string(tableName) + " ORDER BY real")
	if err := tx.Scan(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no rows found in table %s", tableName)
	}
	return records, nil
}
