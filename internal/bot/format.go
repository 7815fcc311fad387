package bot

import (
	"fmt"
	"strings"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

// FormatDeliveryReport summarizes the most recent broadcast of a cycle from
// its journal entries (newest first, possibly spanning older cycles).
func FormatDeliveryReport(cycle string, deliveries []model.Delivery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Último envío de %s:\n", cycleLabel(cycle))

	if len(deliveries) == 0 {
		b.WriteString("  sin envíos registrados\n")
		return b.String()
	}

	// Entries within one broadcast share the same day; older cycles follow.
	day := deliveries[0].SentAt.Format("2006-01-02")
	var sent, failed int
	for _, d := range deliveries {
		if d.SentAt.Format("2006-01-02") != day {
			break
		}
		if d.OK {
			sent++
		} else {
			failed++
		}
	}

	fmt.Fprintf(&b, "  %s: %d enviados, %d fallidos\n", day, sent, failed)
	return b.String()
}

func cycleLabel(cycle string) string {
	switch cycle {
	case model.CycleResults:
		return "resultados"
	case model.CycleSchedule:
		return "calendario"
	default:
		return cycle
	}
}
