// Package delivery classifies per-recipient send failures.
//
// The sender suppresses every failure either way; the classification exists so
// logs and the journal can tell a group that kicked the bot apart from a
// transient Telegram error.
package delivery

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind labels a send failure.
type Kind string

// Failure kinds.
const (
	KindUnreachable Kind = "unreachable"
	KindTransient   Kind = "transient"
)

// Classify labels a send error. A recipient is unreachable when the bot was
// kicked or blocked or the chat no longer exists; everything else is assumed
// transient.
func Classify(err error) Kind {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 403:
			return KindUnreachable
		case apiErr.Code == 400 && strings.Contains(strings.ToLower(apiErr.Message), "chat not found"):
			return KindUnreachable
		}
	}
	return KindTransient
}
