package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/tornado_analyzer/config"
	"github.com/pivolan/tornado_analyzer/domain/models"
	"github.com/pivolan/tornado_analyzer/plot"
	"github.com/pivolan/tornado_analyzer/tornado"
)

func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message
	if message.IsCommand() {
		handleCommand(bot, update)
		return
	}

	helpText := `Upload an ensemble sensitivity export (CSV with columns REAL, SENSNAME, SENSCASE, SENSTYPE, VALUE) as a document and I will reply with the tornado table and chart. Archives (gzip, lz4, zip) are supported.

Commands:
/ref <sensname> - set the reference sensitivity (default rms_seed)
/scale <Percentage|Absolute> - set the delta scale
/cut <on|off> - drop sensitivities with no impact
/sens <sensname> - details for one sensitivity of the last upload`

	uid := uuid.NewV4()
	registerSession(uid.String(), message.Chat.ID)
	msg := tgbotapi.NewMessage(message.Chat.ID,
		helpText+"\n\nFor files over 20 MB use the web upload: "+config.GetConfig().PublicURL+"/?id="+uid.String())
	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending help message: %v", err)
	}
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		uid := uuid.NewV4()
		registerSession(uid.String(), message.Chat.ID)
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"Error on upload, if the file is too big upload it by this link: "+config.GetConfig().PublicURL+"/?id="+uid.String())
		bot.Send(msg)
		return
	}

	// Download file to disk
	filePath := filepath.Join("uploads", strconv.Itoa(message.From.ID), message.Document.FileName)
	err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
	if err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	_, err = io.Copy(file, resp.Body)
	file.Close()
	if err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go func() {
		data, tableName, err := handleFile(filePath, optionsForChat(message.Chat.ID))
		if err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Cannot analyze ensemble: "+err.Error())
			bot.Send(msg)
			return
		}
		rememberResult(message.Chat.ID, data)
		sendTornadoResults(message.Chat.ID, data, tableName, bot)
	}()
}

func sendTornadoResults(chatId int64, data *tornado.TornadoData, tableName models.EnsembleTableName, bot *tgbotapi.BotAPI) {
	formattedText := tornado.NewTornadoTable(data).Render()

	msg := tgbotapi.NewMessage(chatId, "<pre>\n"+formattedText+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)

	fileData := tgbotapi.FileBytes{
		Name:  "tornado" + time.Now().Format("20060102-150405") + ".txt",
		Bytes: []byte(formattedText),
	}
	docMsg := tgbotapi.NewDocumentUpload(chatId, fileData)
	docMsg.Caption = fmt.Sprintf("Tornado table, reference %s, scale %s", data.Reference, data.Scale)
	bot.Send(docMsg)

	graph, err := plot.DrawPlotBar(plot.NewDataTornadoForGraph(data.Rows, deltaAxisName(data), "Tornado sensitivities"))
	if err != nil {
		log.Printf("Error rendering tornado chart: %v", err)
	} else {
		sendTornadoGraph(graph, "tornado", chatId, bot)
	}

	if tableName != "" {
		link := config.GetConfig().PublicURL + "/tornado?table=" + string(tableName) +
			"&reference=" + data.Reference + "&scale=" + string(data.Scale)
		bot.Send(tgbotapi.NewMessage(chatId, "Interactive dashboard: "+link))
	}
}

func deltaAxisName(data *tornado.TornadoData) string {
	if data.Scale == models.ScalePercentage {
		return "Delta, % of reference"
	}
	return "Delta"
}
