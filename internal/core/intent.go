package core

// QueryIntent is the coarse purpose of a user message.
type QueryIntent string

const (
	IntentBrandSearch  QueryIntent = "brand_search"
	IntentPriceFilter  QueryIntent = "price_filter"
	IntentSpecQuery    QueryIntent = "spec_query"
	IntentGamingSearch QueryIntent = "gaming_search"
	IntentComparison   QueryIntent = "comparison"
	IntentGeneralHelp  QueryIntent = "general_help"
	IntentOffTopic     QueryIntent = "off_topic"
)

// Intents lists every QueryIntent value.
var Intents = []QueryIntent{
	IntentBrandSearch,
	IntentPriceFilter,
	IntentSpecQuery,
	IntentGamingSearch,
	IntentComparison,
	IntentGeneralHelp,
	IntentOffTopic,
}

// ExtractedParams holds the constraints found in a message.
// A nil or empty field means the message did not constrain it.
type ExtractedParams struct {
	Brand    string `json:"brand,omitempty"`
	MinRAM   *int   `json:"minRam,omitempty"`
	MaxPrice *int64 `json:"maxPrice,omitempty"`
}

// Clone returns a copy that shares no pointers with p.
func (p ExtractedParams) Clone() ExtractedParams {
	out := ExtractedParams{Brand: p.Brand}
	if p.MinRAM != nil {
		v := *p.MinRAM
		out.MinRAM = &v
	}
	if p.MaxPrice != nil {
		v := *p.MaxPrice
		out.MaxPrice = &v
	}
	return out
}

// Constrained reports whether any field is set.
func (p ExtractedParams) Constrained() bool {
	return p.Brand != "" || p.MinRAM != nil || p.MaxPrice != nil
}
