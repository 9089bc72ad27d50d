// Package analyze orchestrates per-aspect whitepaper evaluation against an
// external analysis provider and aggregates the results into a report.
package analyze

import (
	"context"
	"fmt"

	"github.com/papergrade/papergrade"
)

// maxPromptChars limits how much source text is sent to the provider.
const maxPromptChars = 4000

const systemPrompt = "You are an expert at analyzing cryptocurrency and " +
	"blockchain project whitepapers. Provide a thorough, critical evaluation " +
	"of the requested aspect. Always conclude your analysis with an explicit " +
	"\"Overall Score: X/10\" line."

// Analyzer evaluates whitepaper text aspect by aspect. Provider failures are
// absorbed into the returned AspectScore rather than surfaced as errors, so
// one failing aspect never aborts a run.
type Analyzer struct {
	Chat papergrade.ChatService
}

// AnalyzeAspect sends the content to the provider for a single aspect and
// extracts a numeric score from the response. If no score is found, it
// retries exactly once with a follow-up message requesting the missing
// score and re-extracts from the concatenated responses. A failed initial
// request yields an "Error in analysis:" text with score 0.
func (a *Analyzer) AnalyzeAspect(ctx context.Context, content string, aspect papergrade.Aspect) papergrade.AspectScore {
	maxPoints := aspect.MaxPoints()

	messages := []papergrade.Message{
		{Role: papergrade.RoleSystem, Content: systemPrompt},
		{Role: papergrade.RoleUser, Content: fmt.Sprintf(
			"Analyze the %s aspects of this cryptocurrency project based on the following whitepaper content: %s",
			aspect, truncate(content, maxPromptChars),
		)},
	}

	analysis, err := a.Chat.CreateCompletion(ctx, messages)
	if err != nil {
		return papergrade.AspectScore{
			Aspect:    aspect,
			Analysis:  "Error in analysis: " + err.Error(),
			Score:     0,
			MaxPoints: maxPoints,
		}
	}

	score := papergrade.ExtractScore(analysis, maxPoints)
	if score == 0 {
		messages = append(messages,
			papergrade.Message{Role: papergrade.RoleAssistant, Content: analysis},
			papergrade.Message{Role: papergrade.RoleUser, Content: fmt.Sprintf(
				"Your analysis did not include an explicit score. Please state your final \"Overall Score: X/10\" for the %s aspect.",
				aspect,
			)},
		)
		// A failed retry keeps the first response; the score stays 0.
		if followUp, err := a.Chat.CreateCompletion(ctx, messages); err == nil {
			analysis = analysis + "\n\n" + followUp
			score = papergrade.ExtractScore(analysis, maxPoints)
		}
	}

	return papergrade.AspectScore{
		Aspect:    aspect,
		Analysis:  analysis,
		Score:     score,
		MaxPoints: maxPoints,
	}
}

// AnalyzeAll evaluates every canonical aspect in order and aggregates the
// results into a Report.
func (a *Analyzer) AnalyzeAll(ctx context.Context, sourceURL, content string) *papergrade.Report {
	aspects := papergrade.Aspects()
	scores := make([]papergrade.AspectScore, 0, len(aspects))
	for _, aspect := range aspects {
		scores = append(scores, a.AnalyzeAspect(ctx, content, aspect))
	}
	return papergrade.NewReport(sourceURL, scores)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
