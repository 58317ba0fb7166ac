// Package guard keeps conversations on the gadget topic. Both checks are
// case-insensitive substring scans over fixed keyword lists, so a blocked
// word inside an unrelated word still blocks.
package guard

import (
	"fmt"
	"strings"
)

// Deflection replaces any reply that was filtered.
const Deflection = "Maaf, saya hanya bisa membantu seputar smartphone dan gadget. Ada yang ingin ditanyakan tentang HP? 📱"

// deflectionPhrase marks a reply that already is a deflection.
const deflectionPhrase = "smartphone dan gadget"

// BlockedTopics in priority order; the first match names the reason.
var BlockedTopics = []string{
	"politik", "agama", "sara", "hack", "crack",
	"bypass", "illegal", "xxx", "drugs", "narkoba",
	"judi", "gambling", "teroris", "bunuh",
}

// DomainKeywords signal that a reply is about gadgets.
var DomainKeywords = []string{
	"smartphone", "hp", "handphone", "ponsel", "gadget",
	"ram", "processor", "prosesor", "harga", "rupiah",
	"samsung", "apple", "iphone", "xiaomi", "oppo", "vivo",
	"realme", "poco", "redmi", "asus", "rog", "infinix",
	"tecno", "gaming", "kamera", "baterai", "layar",
	"storage", "memori", "spek", "spesifikasi",
	"flagship", "budget", "murah", "mahal", "mid-range",
}

// Policy decides replies that match neither list.
type Policy int

const (
	// FailOpen lets unclassified replies through.
	FailOpen Policy = iota
	// FailClosed deflects unclassified replies.
	FailClosed
)

func (p Policy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

// Verdict is the result of a check. Reason is empty when Allowed.
type Verdict struct {
	Allowed bool   `json:"isAllowed"`
	Reason  string `json:"reason,omitempty"`
}

type Guard struct {
	blocked []string
	domain  []string
	policy  Policy
}

func New(policy Policy) *Guard {
	return &Guard{
		blocked: BlockedTopics,
		domain:  DomainKeywords,
		policy:  policy,
	}
}

func (g *Guard) Policy() Policy {
	return g.policy
}

// ValidateUserInput rejects messages that mention a blocked topic.
func (g *Guard) ValidateUserInput(message string) Verdict {
	if kw, ok := firstMatch(strings.ToLower(message), g.blocked); ok {
		return Verdict{Reason: fmt.Sprintf(`Topik "%s" tidak diizinkan`, kw)}
	}
	return Verdict{Allowed: true}
}

// ValidateResponse checks a candidate reply before it reaches the user.
// Domain vocabulary or the deflection phrase allow it, a blocked topic
// rejects it, and anything else is decided by the policy.
func (g *Guard) ValidateResponse(text string) Verdict {
	lower := strings.ToLower(text)

	if strings.Contains(lower, deflectionPhrase) {
		return Verdict{Allowed: true}
	}
	if _, ok := firstMatch(lower, g.domain); ok {
		return Verdict{Allowed: true}
	}
	if kw, ok := firstMatch(lower, g.blocked); ok {
		return Verdict{Reason: fmt.Sprintf(`Respons memuat topik "%s" yang tidak diizinkan`, kw)}
	}

	if g.policy == FailClosed {
		return Verdict{Reason: "Respons di luar topik smartphone dan gadget"}
	}
	return Verdict{Allowed: true}
}

func firstMatch(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
