package main

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/tornado_analyzer/config"
	"github.com/pivolan/tornado_analyzer/domain/models"
)

func connectClickhouse() (*gorm.DB, error) {
	cfg := config.GetConfig()
	db, err := gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to clickhouse: %v", err)
	}
	return db, nil
}

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

func replaceSpecialSymbols(input string) string {
	// Replace all non-alphanumeric characters with underscores
	re := regexp.MustCompile("[^a-zA-Z0-9]+")
	processedString := re.ReplaceAllString(input, "_")

	// Replace any consecutive underscores with a single underscore
	processedString = strings.ReplaceAll(processedString, "__", "_")

	// Remove any underscores at the beginning or end of the string
	return strings.Trim(processedString, "_")
}

func getColumnAndTypeList(db *gorm.DB, tableName models.EnsembleTableName) ([]models.ColumnInfo, error) {
	tx := db.Raw(fmt.Sprintf("DESCRIBE TABLE %s", tableName))
	if tx.Error != nil {
		return nil, tx.Error
	}

	var columns []models.ColumnInfo
	tx.Scan(&columns)
	return columns, nil
}
