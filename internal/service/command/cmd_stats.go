package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type StatsSource interface {
	Stats() core.LogStats
}

type StatsCommand struct {
	stats     StatsSource
	formatter *ResponseFormatter
}

func NewStatsCommand(stats StatsSource) *StatsCommand {
	return &StatsCommand{stats: stats, formatter: NewResponseFormatter()}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Statistik percakapan"
}

func (c *StatsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	s := c.stats.Stats()

	sections := []string{
		c.formatter.Info("Statistik GadgetBot"),
		c.formatter.Label("Total pertanyaan", fmt.Sprintf("%d", s.TotalQueries)) +
			c.formatter.Label("Rata-rata latensi", fmt.Sprintf("%d ms", s.AverageLatencyMs)) +
			c.formatter.Label("Difilter", fmt.Sprintf("%.1f%%", s.FilterRatePercent)),
	}

	if len(s.IntentHistogram) > 0 {
		sections = append(sections, "**Intent**\n"+c.formatter.List(histogram(s.IntentHistogram)))
	}
	if len(s.BrandHistogram) > 0 {
		sections = append(sections, "**Brand**\n"+c.formatter.List(histogram(s.BrandHistogram)))
	}
	return c.formatter.Combine(sections...), nil
}

// histogram renders counts highest first, ties by name.
func histogram[K ~string](h map[K]int) []string {
	keys := make([]K, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if h[keys[i]] != h[keys[j]] {
			return h[keys[i]] > h[keys[j]]
		}
		return keys[i] < keys[j]
	})

	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, fmt.Sprintf("%s: %d", k, h[k]))
	}
	return items
}
