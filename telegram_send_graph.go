package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// sendTornadoGraph sends a rendered chart to the chat, as an inline photo
// when it is small enough and as a document otherwise (telegram recompresses
// large photos to the point of unreadable axis labels).
func sendTornadoGraph(graph []byte, name string, chatID int64, api *tgbotapi.BotAPI) {
	fileName := fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	var maxSizePhoto = 150000
	if len(graph) < maxSizePhoto {
		photoMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photoMsg.Caption = "Tornado chart: sensitivities ranked by impact on the response"
		if _, err := api.Send(photoMsg); err != nil {
			log.Printf("Error sending chart %s: %v", fileName, err)
			api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Cannot send chart: %v", err)))
		}
		return
	}

	docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
	docMsg.Caption = "Tornado chart: sensitivities ranked by impact on the response"
	if _, err := api.Send(docMsg); err != nil {
		log.Printf("Error sending chart %s: %v", fileName, err)
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Cannot send chart: %v", err)))
	}
}
