package bot

import (
	"context"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/feed"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

// BroadcastResults runs one results cycle: fetch yesterday's results, format
// them and fan out to every registered group. A fetch or parse failure ends
// the cycle; the next day's trigger is unaffected.
func (b *Bot) BroadcastResults(ctx context.Context) {
	results, err := b.feed.FetchResults(ctx, b.cfg.Data.Results)
	if err != nil {
		b.log.Error("fetch results", "url", b.cfg.Data.Results, "error", err)
		return
	}

	text := feed.FormatResults(results)
	if text == "" {
		b.log.Info("no results to broadcast")
		return
	}

	b.Broadcast(ctx, model.CycleResults, text)
}

// BroadcastFixtures runs one schedule cycle: fetch today's duels, format them
// and fan out to every registered group.
func (b *Bot) BroadcastFixtures(ctx context.Context) {
	fixtures, err := b.feed.FetchFixtures(ctx, b.cfg.Data.Schedule)
	if err != nil {
		b.log.Error("fetch schedule", "url", b.cfg.Data.Schedule, "error", err)
		return
	}

	text := feed.FormatFixtures(fixtures)
	if text == "" {
		b.log.Info("no fixtures to broadcast")
		return
	}

	b.Broadcast(ctx, model.CycleSchedule, text)
}
