package papergrade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Aspect is one of the four fixed evaluation categories. Each aspect is
// scored independently; max points across the canonical aspects sum to 100.
type Aspect string

// Canonical aspects.
const (
	AspectTokenomics Aspect = "tokenomics"
	AspectTechnology Aspect = "technology"
	AspectMarket     Aspect = "market"
	AspectTeam       Aspect = "team"
)

// Aspects returns the canonical aspects in scoring order.
func Aspects() []Aspect {
	return []Aspect{AspectTokenomics, AspectTechnology, AspectMarket, AspectTeam}
}

// MaxPoints returns the maximum points awarded for the aspect.
// Unknown aspects return 0.
func (a Aspect) MaxPoints() int {
	switch a {
	case AspectTokenomics, AspectTechnology:
		return 30
	case AspectMarket, AspectTeam:
		return 20
	}
	return 0
}

// AspectScore holds the provider analysis and the extracted score for one
// aspect. Analysis is the full text returned by the provider, including any
// retry-appended text. Score is always within [0, MaxPoints].
type AspectScore struct {
	Aspect    Aspect  `json:"aspect"`
	Analysis  string  `json:"analysis"`
	Score     float64 `json:"score"`
	MaxPoints int     `json:"maxPoints"`
}

// Report aggregates the aspect scores of one whitepaper analysis run.
type Report struct {
	ID        string        `json:"id"`
	SourceURL string        `json:"sourceUrl"`
	Aspects   []AspectScore `json:"aspects"`
	Total     float64       `json:"total"`
	MaxTotal  int           `json:"maxTotal"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewReport builds a Report from per-aspect scores, summing totals.
func NewReport(sourceURL string, scores []AspectScore) *Report {
	var total float64
	var maxTotal int
	for _, s := range scores {
		total += s.Score
		maxTotal += s.MaxPoints
	}
	return &Report{
		ID:        uuid.NewString(),
		SourceURL: sourceURL,
		Aspects:   scores,
		Total:     total,
		MaxTotal:  maxTotal,
		CreatedAt: time.Now().UTC(),
	}
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single message in a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatService sends a conversation to an external analysis provider and
// returns the assistant's reply text. Non-2xx responses and malformed
// payloads surface as errors; callers treat them as recoverable.
type ChatService interface {
	CreateCompletion(ctx context.Context, messages []Message) (string, error)
}
