// Package intent classifies user messages with ordered keyword rules.
// The result is used for routing and analytics only.
package intent

import (
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
)

// Rule assigns Intent to messages its Match accepts. Match receives the
// lower-cased message.
type Rule struct {
	Intent core.QueryIntent
	Match  func(lower string) bool
}

func containsAny(tokens ...string) func(string) bool {
	return func(lower string) bool {
		for _, t := range tokens {
			if strings.Contains(lower, t) {
				return true
			}
		}
		return false
	}
}

// brandTokens doubles as the brand_search trigger list.
var brandTokens = []string{
	"samsung", "apple", "iphone", "xiaomi", "poco", "redmi",
	"oppo", "vivo", "realme", "asus", "rog", "infinix", "tecno",
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{Intent: core.IntentBrandSearch, Match: containsAny(brandTokens...)},
	{Intent: core.IntentPriceFilter, Match: containsAny("murah", "budget", "juta", "harga")},
	{Intent: core.IntentSpecQuery, Match: containsAny("ram", "processor", "prosesor", "storage", "kamera", "camera")},
	{Intent: core.IntentGamingSearch, Match: containsAny("gaming", "game")},
	{Intent: core.IntentComparison, Match: containsAny("banding", "vs", "lebih baik")},
	{Intent: core.IntentOffTopic, Match: containsAny("cuaca", "berita", "resep", "film", "musik")},
}

// DetectIntent returns exactly one intent for any message.
func DetectIntent(message string) core.QueryIntent {
	lower := strings.ToLower(message)
	for _, r := range Rules {
		if r.Match(lower) {
			return r.Intent
		}
	}
	return core.IntentGeneralHelp
}
