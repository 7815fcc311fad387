package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/feed"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(chatID)
	case "ayuda", "help":
		b.handleHelp(chatID)
	case "resultados":
		b.handleResults(ctx, chatID)
	case "calendario":
		b.handleCalendar(ctx, chatID)
	case "estado":
		b.handleStatus(ctx, chatID)
	}
}

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, `¡Hola! Soy el bot de la liga Carcassonne Spain.

Cada día envío los resultados de ayer y los duelos de hoy a los grupos donde estoy.

Usa /ayuda para ver los comandos disponibles.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Comandos:
/resultados — resultados de ayer
/calendario — próximos duelos
/estado — resultado del último envío
/ayuda — esta ayuda`)
}

func (b *Bot) handleResults(ctx context.Context, chatID int64) {
	results, err := b.feed.FetchResults(ctx, b.cfg.Data.Results)
	if err != nil {
		b.log.Error("fetch results", "url", b.cfg.Data.Results, "error", err)
		b.reply(chatID, "No he podido descargar los resultados.")
		return
	}

	text := feed.FormatResults(results)
	if text == "" {
		b.reply(chatID, "Ayer no se jugó ningún duelo.")
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) handleCalendar(ctx context.Context, chatID int64) {
	fixtures, err := b.feed.FetchFixtures(ctx, b.cfg.Data.Calendar)
	if err != nil {
		b.log.Error("fetch calendar", "url", b.cfg.Data.Calendar, "error", err)
		b.reply(chatID, "No he podido descargar el calendario.")
		return
	}

	text := feed.FormatFixtures(fixtures)
	if text == "" {
		b.reply(chatID, "No hay duelos programados.")
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	var report string
	for _, cycle := range []string{model.CycleResults, model.CycleSchedule} {
		deliveries, err := b.store.ListDeliveries(ctx, cycle, 50)
		if err != nil {
			b.log.Error("list deliveries", "cycle", cycle, "error", err)
			b.reply(chatID, fmt.Sprintf("Error consultando el historial: %v", err))
			return
		}
		report += FormatDeliveryReport(cycle, deliveries)
	}
	b.reply(chatID, report)
}
