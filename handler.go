package main

import (
	"log"
	"path/filepath"

	"github.com/pivolan/tornado_analyzer/domain/models"
	"github.com/pivolan/tornado_analyzer/tornado"
)

type analyzeOptions struct {
	Reference string
	Scale     models.Scale
	CutByRef  bool
}

func defaultAnalyzeOptions() analyzeOptions {
	return analyzeOptions{
		Reference: tornado.DefaultReference,
		Scale:     models.ScalePercentage,
		CutByRef:  true,
	}
}

// handleFile runs the full pipeline for one uploaded ensemble: unpack, parse,
// store in ClickHouse, compute the tornado. Storage failures are logged but
// do not block the analysis; the returned table name is empty in that case.
func handleFile(filePath string, opts analyzeOptions) (*tornado.TornadoData, models.EnsembleTableName, error) {
	unpackedFilePath, err := unpackArchive(filePath)
	if err != nil {
		return nil, "", err
	}
	if unpackedFilePath != "" {
		filePath = unpackedFilePath
	}

	records, err := parseEnsembleFile(filePath)
	if err != nil {
		return nil, "", err
	}

	tableName := models.EnsembleTableName("")
	db, err := connectClickhouse()
	if err != nil {
		log.Printf("clickhouse unavailable, ensemble will not be stored: %v", err)
	} else {
		tableName, err = importEnsembleIntoClickHouse(db, records, filepath.Base(filePath))
		if err != nil {
			log.Printf("error importing ensemble into ClickHouse: %v", err)
			tableName = ""
		}
	}

	data, err := tornado.NewTornadoData(records, opts.Reference, opts.Scale, opts.CutByRef)
	if err != nil {
		return nil, tableName, err
	}
	return data, tableName, nil
}
