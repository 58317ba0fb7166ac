package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type brandAlias struct {
	keyword string
	brand   string
}

// brandAliases is ordered: sub-brands come after their parents only where
// the canonical name differs, so "redmi" resolves to Xiaomi and "rog" to Asus.
var brandAliases = []brandAlias{
	{"samsung", "Samsung"},
	{"apple", "Apple"},
	{"iphone", "Apple"},
	{"xiaomi", "Xiaomi"},
	{"poco", "Poco"},
	{"redmi", "Xiaomi"},
	{"oppo", "Oppo"},
	{"vivo", "Vivo"},
	{"realme", "Realme"},
	{"asus", "Asus"},
	{"rog", "Asus"},
	{"infinix", "Infinix"},
	{"tecno", "Tecno"},
}

const (
	heavyLoadRAM   = 12
	standardRAM    = 4
	budgetMaxPrice = 7_000_000
	juta           = 1_000_000
)

var (
	heavyLoad = containsAny("gaming", "berat")
	standard  = containsAny("standar")
	cheap     = containsAny("murah", "budget")

	priceRe  = regexp.MustCompile(`(\d[\d.,]*)\s*juta`)
	amountRe = regexp.MustCompile(`^(\d{1,3}(?:\.\d{3})+|\d+)(?:,(\d+))?$`)
)

// ExtractParams pulls brand, RAM and price constraints out of a message.
// It never fails; a constraint that can't be read is left unset.
func ExtractParams(message string) core.ExtractedParams {
	lower := strings.ToLower(message)
	var p core.ExtractedParams

	for _, a := range brandAliases {
		if strings.Contains(lower, a.keyword) {
			p.Brand = a.brand
			break
		}
	}

	switch {
	case heavyLoad(lower):
		p.MinRAM = intPtr(heavyLoadRAM)
	case standard(lower):
		p.MinRAM = intPtr(standardRAM)
	}

	if price, ok := parseJuta(lower); ok {
		p.MaxPrice = &price
	} else if cheap(lower) {
		p.MaxPrice = int64Ptr(budgetMaxPrice)
	}

	return p
}

// parseJuta reads "5 juta", "2,5 juta" or "1.500 juta" as rupiah.
// The dot groups thousands and the comma is the decimal mark.
func parseJuta(lower string) (int64, bool) {
	m := priceRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	a := amountRe.FindStringSubmatch(m[1])
	if a == nil {
		return 0, false
	}
	num := strings.ReplaceAll(a[1], ".", "")
	if a[2] != "" {
		num += "." + a[2]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	amount := math.Round(v * juta)
	if amount >= math.MaxInt64 {
		return 0, false
	}
	return int64(amount), true
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
