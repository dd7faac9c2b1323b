package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/tornado_analyzer/domain/models"
	"github.com/pivolan/tornado_analyzer/tornado"
)

var (
	chatStateMu sync.Mutex
	chatOptions = map[int64]analyzeOptions{}
	lastResults = map[int64]*tornado.TornadoData{}
	users       = map[string]int64{}
	toDelete    = map[string]time.Time{}
)

func registerSession(uid string, chatId int64) {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	users[uid] = chatId
	toDelete[uid] = time.Now()
}

func chatForSession(uid string) (int64, bool) {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	chatId, ok := users[uid]
	return chatId, ok
}

func expireSessions(maxAge time.Duration) {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	for uid, date := range toDelete {
		if time.Now().After(date.Add(maxAge)) {
			delete(users, uid)
			delete(toDelete, uid)
		}
	}
}

func optionsForChat(chatId int64) analyzeOptions {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	if opts, ok := chatOptions[chatId]; ok {
		return opts
	}
	return defaultAnalyzeOptions()
}

func setOptionsForChat(chatId int64, opts analyzeOptions) {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	chatOptions[chatId] = opts
}

func rememberResult(chatId int64, data *tornado.TornadoData) {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	lastResults[chatId] = data
}

func lastResult(chatId int64) *tornado.TornadoData {
	chatStateMu.Lock()
	defer chatStateMu.Unlock()
	return lastResults[chatId]
}

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message
	chatId := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	opts := optionsForChat(chatId)

	reply := func(text string) {
		api.Send(tgbotapi.NewMessage(chatId, text))
	}

	switch message.Command() {
	case "start", "help":
		reply(`Send an ensemble sensitivity CSV (REAL, SENSNAME, SENSCASE, SENSTYPE, VALUE) and get a tornado analysis back.

/ref <sensname> - reference sensitivity, current: ` + opts.Reference + `
/scale <Percentage|Absolute> - delta scale, current: ` + string(opts.Scale) + `
/cut <on|off> - drop zero-impact sensitivities
/sens <sensname> - details for one sensitivity of the last upload`)
	case "ref":
		if args == "" {
			reply("Current reference: " + opts.Reference)
			return
		}
		opts.Reference = args
		setOptionsForChat(chatId, opts)
		reply("Reference sensitivity set to " + args + ", upload an ensemble to recalculate")
	case "scale":
		switch models.Scale(args) {
		case models.ScalePercentage, models.ScaleAbsolute:
			opts.Scale = models.Scale(args)
			setOptionsForChat(chatId, opts)
			reply("Scale set to " + args)
		default:
			reply("Usage: /scale Percentage or /scale Absolute, current: " + string(opts.Scale))
		}
	case "cut":
		switch args {
		case "on":
			opts.CutByRef = true
		case "off":
			opts.CutByRef = false
		default:
			reply(fmt.Sprintf("Usage: /cut on or /cut off, current: %v", opts.CutByRef))
			return
		}
		setOptionsForChat(chatId, opts)
		reply(fmt.Sprintf("Cut by reference set to %v", opts.CutByRef))
	case "sens":
		handleSensitivityDetails(api, chatId, args)
	default:
		reply("Unknown command, see /help")
	}
}

func handleSensitivityDetails(api *tgbotapi.BotAPI, chatId int64, sensName string) {
	reply := func(text string) {
		api.Send(tgbotapi.NewMessage(chatId, text))
	}
	data := lastResult(chatId)
	if data == nil {
		reply("No ensemble analyzed yet, upload a CSV first")
		return
	}
	if sensName == "" {
		names := make([]string, 0, len(data.Rows))
		for _, row := range data.Rows {
			names = append(names, row.SensName)
		}
		reply("Usage: /sens <sensname>, available: " + strings.Join(names, ", "))
		return
	}

	for _, row := range data.Rows {
		if row.SensName != sensName {
			continue
		}
		text := fmt.Sprintf(`Sensitivity %s (reference %s, scale %s)

Low case %q:
  true value: %s
  delta: %.3f
  realizations: %s

High case %q:
  true value: %s
  delta: %.3f
  realizations: %s`,
			row.SensName, data.Reference, data.Scale,
			row.LowLabel, tornado.SIFormat(row.TrueLow), row.LowTooltip, tornado.PrintableIntList(row.LowReals),
			row.HighLabel, tornado.SIFormat(row.TrueHigh), row.HighTooltip, tornado.PrintableIntList(row.HighReals))
		reply(text)
		return
	}
	reply("Sensitivity " + sensName + " not found in the last analysis")
}
