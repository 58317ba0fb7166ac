package analytics

import (
	"math"

	"github.com/sandevgo/gadgetbot/internal/core"
)

// Stats aggregates the buffer in one pass. An empty log yields zeros and
// empty histograms.
func (l *Logger) Stats() core.LogStats {
	stats := core.LogStats{
		IntentHistogram: make(map[core.QueryIntent]int),
		BrandHistogram:  make(map[string]int),
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var latency int64
	var filtered int
	for i := 0; i < l.size; i++ {
		e := l.at(i)
		latency += e.LatencyMs
		stats.IntentHistogram[e.DetectedIntent]++
		if e.ExtractedParams.Brand != "" {
			stats.BrandHistogram[e.ExtractedParams.Brand]++
		}
		if e.WasFiltered {
			filtered++
		}
	}

	stats.TotalQueries = l.size
	if l.size == 0 {
		return stats
	}
	stats.AverageLatencyMs = int64(math.Round(float64(latency) / float64(l.size)))
	stats.FilterRatePercent = float64(filtered) / float64(l.size) * 100
	return stats
}
