package core

import "time"

type Feedback string

const (
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
)

func (f Feedback) Valid() bool {
	return f == FeedbackPositive || f == FeedbackNegative
}

type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// AILogEntry records one completed exchange. Only UserFeedback changes
// after the entry is stored.
type AILogEntry struct {
	ID                  string          `json:"id"`
	Timestamp           time.Time       `json:"timestamp"`
	SessionID           string          `json:"sessionId"`
	UserMessage         string          `json:"userMessage"`
	DetectedIntent      QueryIntent     `json:"detectedIntent"`
	ExtractedParams     ExtractedParams `json:"extractedParams"`
	PromptUsed          string          `json:"promptUsed"`
	ModelUsed           string          `json:"modelUsed"`
	TokensUsed          TokenUsage      `json:"tokensUsed"`
	LatencyMs           int64           `json:"latencyMs"`
	AIResponse          string          `json:"aiResponse"`
	ProductsRecommended []string        `json:"productsRecommended"`
	WasFiltered         bool            `json:"wasFiltered"`
	FilterReason        string          `json:"filterReason,omitempty"`
	UserFeedback        *Feedback       `json:"userFeedback"`
	FollowUpAsked       bool            `json:"followUpAsked"`
}

// Clone returns a deep copy of e.
func (e AILogEntry) Clone() AILogEntry {
	out := e
	out.ExtractedParams = e.ExtractedParams.Clone()
	out.ProductsRecommended = append([]string{}, e.ProductsRecommended...)
	if e.UserFeedback != nil {
		fb := *e.UserFeedback
		out.UserFeedback = &fb
	}
	return out
}

// Interaction is what the pipeline knows about a finished exchange.
type Interaction struct {
	SessionID           string
	UserMessage         string
	AIResponse          string
	StartedAt           time.Time
	ProductsRecommended []string
	WasFiltered         bool
	FilterReason        string
	PromptUsed          string
	ModelUsed           string
}

// LogStats aggregates the interaction log.
type LogStats struct {
	TotalQueries      int                 `json:"totalQueries"`
	AverageLatencyMs  int64               `json:"averageLatencyMs"`
	IntentHistogram   map[QueryIntent]int `json:"intentHistogram"`
	BrandHistogram    map[string]int      `json:"brandHistogram"`
	FilterRatePercent float64             `json:"filterRatePercent"`
}
