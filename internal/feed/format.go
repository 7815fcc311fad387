package feed

import (
	"fmt"
	"html"
	"strings"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

// FormatResults renders finished duels as a Telegram HTML message, grouped by
// division in display order. An empty string means there is nothing to send.
func FormatResults(results []model.Result) string {
	byDivision := make(map[model.Division][]model.Result)
	for _, r := range results {
		byDivision[r.Division] = append(byDivision[r.Division], r)
	}

	var b strings.Builder
	for _, div := range model.Divisions {
		rows := byDivision[div]
		if len(rows) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "<b>%s:</b>\n", div)
		for _, r := range rows {
			fmt.Fprintf(&b, "%s <a href=%q>%s - %s</a> %s\n",
				html.EscapeString(r.Date),
				r.DuelURL,
				html.EscapeString(r.Home),
				html.EscapeString(r.Away),
				html.EscapeString(r.Score),
			)
		}
	}
	return b.String()
}

// FormatFixtures renders upcoming duels as a Telegram HTML message, grouped by
// division in display order. An empty string means there is nothing to send.
func FormatFixtures(fixtures []model.Fixture) string {
	byDivision := make(map[model.Division][]model.Fixture)
	for _, f := range fixtures {
		byDivision[f.Division] = append(byDivision[f.Division], f)
	}

	var b strings.Builder
	for _, div := range model.Divisions {
		rows := byDivision[div]
		if len(rows) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "<b>%s:</b>\n", div)
		for _, f := range rows {
			fmt.Fprintf(&b, "<a href=%q>%s</a> - <a href=%q>%s</a> <a href=%q>%s</a>\n",
				f.HomeURL,
				html.EscapeString(f.Home),
				f.AwayURL,
				html.EscapeString(f.Away),
				f.DuelURL,
				html.EscapeString(f.Time),
			)
		}
	}
	return b.String()
}
