// Package recommend grounds answers in the spec catalog: it picks models
// that fit the extracted constraints and pairs them with store listings.
package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/conv"
)

const maxFacts = 10

// SpecFinder selects spec rows by brand and minimum RAM.
type SpecFinder interface {
	Candidates(ctx context.Context, brand string, minRAM int) ([]core.Spec, error)
}

// Market lists every store listing.
type Market interface {
	All(ctx context.Context) ([]core.Listing, error)
}

// Fact is a listing of a model whose spec satisfied the request.
type Fact struct {
	Spec    core.Spec
	Listing core.Listing
}

type Advisor struct {
	specs  SpecFinder
	market Market
}

func NewAdvisor(specs SpecFinder, market Market) *Advisor {
	return &Advisor{specs: specs, market: market}
}

// Recommend returns the listings of every candidate model that fits the
// budget, cheapest first. A listing joins its model by sku_ref; listings
// without one join by model name in the title.
func (a *Advisor) Recommend(ctx context.Context, p core.ExtractedParams) ([]Fact, error) {
	minRAM := 0
	if p.MinRAM != nil {
		minRAM = *p.MinRAM
	}

	candidates, err := a.specs.Candidates(ctx, p.Brand, minRAM)
	if err != nil {
		return nil, fmt.Errorf("spec candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	listings, err := a.market.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("market listings: %w", err)
	}

	var facts []Fact
	for _, l := range listings {
		if p.MaxPrice != nil && l.PriceIDR > *p.MaxPrice {
			continue
		}
		if spec, ok := match(candidates, l); ok {
			facts = append(facts, Fact{Spec: spec, Listing: l})
		}
	}

	slices.SortStableFunc(facts, func(x, y Fact) int {
		return cmp.Or(
			cmp.Compare(x.Listing.PriceIDR, y.Listing.PriceIDR),
			cmp.Compare(x.Listing.ID, y.Listing.ID),
		)
	})
	if len(facts) > maxFacts {
		facts = facts[:maxFacts]
	}
	return facts, nil
}

func match(candidates []core.Spec, l core.Listing) (core.Spec, bool) {
	if l.SKURef != "" {
		for _, s := range candidates {
			if strings.EqualFold(s.SKU, l.SKURef) {
				return s, true
			}
		}
		return core.Spec{}, false
	}

	title := strings.ToLower(l.ListingTitle)
	for _, s := range candidates {
		if strings.Contains(title, strings.ToLower(s.Model)) {
			return s, true
		}
	}
	return core.Spec{}, false
}

// FactSheet renders facts as the data block appended to the assistant's
// system instruction.
func FactSheet(facts []Fact) string {
	var sb strings.Builder
	sb.WriteString("DATA FAKTA (Dari katalog spesifikasi & database toko):\n")
	if len(facts) == 0 {
		sb.WriteString("Tidak ditemukan produk yang cocok dengan kriteria dalam database kami.\n")
	}
	for i, f := range facts {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, f.Spec.Model, conv.FormatRupiah(f.Listing.PriceIDR))
		fmt.Fprintf(&sb, "   - Spek: RAM %dGB, Processor %s\n", f.Spec.RAMGB, f.Spec.Processor)
		fmt.Fprintf(&sb, "   - Toko: %s (Kondisi: %s)\n", f.Listing.StoreName, f.Listing.ItemCondition)
	}
	sb.WriteString("\nJawab BERDASARKAN data fakta di atas. JANGAN mengarang spesifikasi atau harga sendiri.\n")
	sb.WriteString("Jika data kosong, minta maaf dan tawarkan pencarian lain.")
	return sb.String()
}
