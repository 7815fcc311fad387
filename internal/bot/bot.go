// Package bot implements the Telegram side of the notifier: the update loop,
// the group self-registration, the broadcast fan-out and a small command
// surface.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/config"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/delivery"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/feed"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that broadcasts league updates to registered groups
// and registers any group it gets added to.
type Bot struct {
	api    telegramAPI
	selfID int64
	cfg    *config.Config
	store  storage.Storage
	feed   *feed.Client
	log    *slog.Logger
}

// New creates a Bot with the given config and delivery journal.
func New(cfg *config.Config, store storage.Storage, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:    api,
		selfID: api.Self.ID,
		cfg:    cfg,
		store:  store,
		feed:   feed.New(http.DefaultClient),
		log:    log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			if len(update.Message.NewChatMembers) > 0 {
				b.handleNewMembers(update.Message)
				continue
			}
			if update.Message.IsCommand() {
				b.handleCommand(ctx, update.Message)
			}
		}
	}
}

// handleNewMembers registers the chat as a broadcast group when the bot itself
// is among the added members. Other members are ignored.
func (b *Bot) handleNewMembers(msg *tgbotapi.Message) {
	for _, member := range msg.NewChatMembers {
		if member.ID != b.selfID {
			continue
		}
		chatID := msg.Chat.ID
		if !b.cfg.AddGroup(chatID) {
			b.log.Debug("group already registered", "chat_id", chatID)
			return
		}
		b.log.Info("group registered", "chat_id", chatID, "title", msg.Chat.Title)
		if err := b.cfg.Save(); err != nil {
			b.log.Error("persist config", "error", err)
		}
		return
	}
}

// Broadcast sends text to every registered group. A failure for one group is
// classified, journaled and suppressed; it never stops the fan-out and never
// removes the group.
func (b *Bot) Broadcast(ctx context.Context, cycle, text string) {
	groups := b.cfg.Groups()
	for _, chatID := range groups {
		entry := model.Delivery{Cycle: cycle, ChatID: chatID, OK: true}

		if err := b.send(chatID, text); err != nil {
			kind := delivery.Classify(err)
			entry.OK = false
			entry.ErrorKind = string(kind)
			entry.ErrorText = err.Error()
			b.log.Warn("send failed", "cycle", cycle, "chat_id", chatID, "kind", kind, "error", err)
		}

		if err := b.store.RecordDelivery(ctx, &entry); err != nil {
			b.log.Error("record delivery", "cycle", cycle, "chat_id", chatID, "error", err)
		}
	}
	b.log.Info("broadcast finished", "cycle", cycle, "groups", len(groups))
}

// send delivers one HTML message with link previews disabled.
func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

// reply sends a message to a single chat, logging any failure.
func (b *Bot) reply(chatID int64, text string) {
	if err := b.send(chatID, text); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}
