package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/tornado_analyzer/domain/models"
	"github.com/pivolan/tornado_analyzer/tornado"
)

func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uid := r.FormValue("uuid")
	if uid == "" {
		http.Error(w, "Error getting uuid", http.StatusBadRequest)
		return
	}

	os.MkdirAll(filepath.Join("uploads", uid), 0755)
	filePath := filepath.Join("uploads", uid, header.Filename)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error create saving file"+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}
	if chatId, ok := chatForSession(uid); ok {
		msg := tgbotapi.NewMessage(chatId, "Your ensemble is uploaded, wait for the tornado analysis")
		bot.Send(msg)
	}

	go func(uid string, filePath string) {
		chatId, known := chatForSession(uid)
		data, tableName, err := handleFile(filePath, optionsForChat(chatId))
		if !known {
			return
		}
		if err != nil {
			bot.Send(tgbotapi.NewMessage(chatId, "Cannot analyze ensemble: "+err.Error()))
			return
		}
		rememberResult(chatId, data)
		sendTornadoResults(chatId, data, tableName, bot)
	}(uid, filePath)

	fmt.Fprintf(w, "File uploaded successfully")
}

// handleTornadoPage serves the interactive tornado dashboard for an ensemble
// previously imported into ClickHouse.
func handleTornadoPage(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if table == "" || replaceSpecialSymbols(table) != table {
		http.Error(w, "Bad table name", http.StatusBadRequest)
		return
	}
	reference := r.URL.Query().Get("reference")
	scale := models.Scale(r.URL.Query().Get("scale"))
	cutByRef := r.URL.Query().Get("cut") != "off"

	db, err := connectClickhouse()
	if err != nil {
		log.Printf("Error connecting clickhouse: %v", err)
		http.Error(w, "Storage unavailable", http.StatusInternalServerError)
		return
	}
	records, err := loadEnsembleFromClickHouse(db, models.EnsembleTableName(table))
	if err != nil {
		http.Error(w, "Unknown ensemble table", http.StatusNotFound)
		return
	}

	data, err := tornado.NewTornadoData(records, reference, scale, cutByRef)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bar := tornado.NewTornadoBarChart(data, "Tornado: "+table)
	if err := bar.Render(w); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}
