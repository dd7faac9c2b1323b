package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/tornado_analyzer/config"
)

var bot *tgbotapi.BotAPI

func main() {
	cfg := config.GetConfig()

	_, err := connectClickhouse()
	if err != nil {
		log.Println("clickhouse not reachable on startup, ensembles will not be stored:", err)
	}

	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		tmpl := template.Must(template.ParseFiles("upload.html"))
		if err := tmpl.Execute(w, id); err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
			return
		}
	})
	http.HandleFunc("/upload", handleUpload)
	http.HandleFunc("/tornado", handleTornadoPage)

	go func() {
		fmt.Println("listen on:", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	go func() {
		for {
			time.Sleep(time.Minute)
			expireSessions(time.Hour)
			removeOldFiles("uploads", time.Now().Add(-time.Hour*2))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error", err)
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}

		if update.Message.Document != nil {
			go handleDocument(bot, update.Message)
		} else if update.Message.Text != "" {
			go handleText(bot, update)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			err := removeOldFiles(filePath, maxAge)
			if err != nil {
				return err
			}
		} else {
			fileStat, err := os.Stat(filePath)
			if err != nil {
				return err
			}
			if fileStat.ModTime().Before(maxAge) {
				if err := os.Remove(filePath); err != nil {
					return err
				}
				fmt.Printf("Removed file: %s\n", filePath)
			}
		}
	}

	return nil
}
