package fallback

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/intent"
	"github.com/sandevgo/gadgetbot/internal/service/recommend"
	"github.com/sandevgo/gadgetbot/pkg/conv"
)

const maxDigestItems = 5

type CatalogOption func(*Catalog)

// WithCatalogAdvisor answers brand and RAM constrained messages from the
// spec catalog instead of free-text search.
func WithCatalogAdvisor(a *recommend.Advisor) CatalogOption {
	return func(c *Catalog) { c.advisor = a }
}

// Catalog answers from live store listings.
type Catalog struct {
	searcher core.CatalogSearcher
	advisor  *recommend.Advisor
}

func NewCatalog(searcher core.CatalogSearcher, opts ...CatalogOption) *Catalog {
	c := &Catalog{searcher: searcher}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) Name() string {
	return "catalog"
}

// Attempt lists the models whose spec fits a named brand or RAM need. Other
// messages search listings by free text, and both paths drop listings above
// the requested budget.
func (c *Catalog) Attempt(ctx context.Context, message string) (Reply, error) {
	params := intent.ExtractParams(message)

	var (
		facts []recommend.Fact
		err   error
	)
	if c.advisor != nil && (params.Brand != "" || params.MinRAM != nil) {
		facts, err = c.recommend(ctx, params)
	} else {
		facts, err = c.search(ctx, message, params)
	}
	if err != nil {
		return Reply{}, err
	}

	if len(facts) > maxDigestItems {
		facts = facts[:maxDigestItems]
	}
	ids := make([]string, 0, len(facts))
	for _, f := range facts {
		ids = append(ids, fmt.Sprintf("%d", f.Listing.ID))
	}

	return Reply{
		Text:       digest(facts),
		Source:     c.Name(),
		Model:      "catalog",
		ProductIDs: ids,
	}, nil
}

func (c *Catalog) recommend(ctx context.Context, params core.ExtractedParams) ([]recommend.Fact, error) {
	facts, err := c.advisor.Recommend(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("catalog recommend: %w", err)
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("catalog recommend %q: %w", params.Brand, core.ErrEmptyOutcome)
	}
	return facts, nil
}

// search looks up the detected brand, or the whole message when no brand
// is named.
func (c *Catalog) search(ctx context.Context, message string, params core.ExtractedParams) ([]recommend.Fact, error) {
	term := params.Brand
	if term == "" {
		term = strings.TrimSpace(message)
	}

	listings, err := c.searcher.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	var facts []recommend.Fact
	for _, l := range listings {
		if params.MaxPrice != nil && l.PriceIDR > *params.MaxPrice {
			continue
		}
		facts = append(facts, recommend.Fact{Listing: l})
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("catalog search %q: %w", term, core.ErrEmptyOutcome)
	}
	return facts, nil
}

func digest(facts []recommend.Fact) string {
	var sb strings.Builder
	sb.WriteString("🔍 **Hasil dari katalog toko:**\n")
	for _, f := range facts {
		l := f.Listing
		fmt.Fprintf(&sb, "\n📱 **%s** (%s)\n", l.ListingTitle, l.ItemCondition)
		if f.Spec.SKU != "" {
			fmt.Fprintf(&sb, "⚙️ Spek: RAM %dGB, %s\n", f.Spec.RAMGB, f.Spec.Processor)
		}
		fmt.Fprintf(&sb, "💰 Harga: %s\n", conv.FormatRupiah(l.PriceIDR))
		fmt.Fprintf(&sb, "🏪 Toko: %s\n", l.StoreName)
	}
	sb.WriteString("\nMau saya bantu bandingkan spesifikasinya?")
	return sb.String()
}
