package papergrade

import (
	"math"
	"regexp"
	"strconv"
)

// The score cascade trusts an explicit aggregate claim over an average of
// itemized sub-scores, and itemized sub-scores over loosely parenthesized
// mentions. Patterns are case-insensitive and allow the label and value to
// span lines.
var (
	overallScoreRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)overall\s+score\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?is)total\s+score\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?is)final\s+score\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?is)score\s+breakdown.*?total\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?is)\btotal\s*[:\-]\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`),
	}

	lineScoreRe    = regexp.MustCompile(`(?i)(?:score|rating)\s*[:\-]\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`)
	numberedItemRe = regexp.MustCompile(`(?im)^\s*\d+\.\s+[^:\r\n]+:\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`)
	parenScoreRe   = regexp.MustCompile(`(?i)score\s*\(\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)\s*\)`)
)

// ExtractScore parses a block of free-text analysis into a single numeric
// score on a [0, maxPoints] scale. Strategies are tried in strict order and
// the first success wins:
//
//  1. an explicit overall/total/final labeled score ("Overall Score: 8.5/10",
//     "Score Breakdown: ... Total: 85/100"), first occurrence wins;
//  2. the average of every "Score:"/"Rating:" value and every numbered-list
//     item of the form "<n>. <label>: <score>/<denominator>", assumed out
//     of 10;
//  3. the average of every parenthesized "Score (N/D)" mention, assumed out
//     of 10.
//
// A captured numerator of at most 10 is treated as out of 10 and rescaled;
// otherwise one of at most 100 is treated as out of 100. A numerator of
// exactly 10 is always "out of 10", never a literal 10 on a bigger scale.
// Results are rounded to one decimal place. If nothing matches, the result
// is exactly 0.
func ExtractScore(text string, maxPoints int) float64 {
	if v, ok := extractOverallScore(text, maxPoints); ok {
		return v
	}
	if v, ok := extractItemizedScores(text, maxPoints); ok {
		return v
	}
	if v, ok := extractParenthesizedScores(text, maxPoints); ok {
		return v
	}
	return 0
}

// extractOverallScore finds the earliest explicit aggregate score claim.
// Numerators above 100 match no known scale and are passed over.
func extractOverallScore(text string, maxPoints int) (float64, bool) {
	bestPos := -1
	var bestVal float64

	for _, re := range overallScoreRes {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			n, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			if err != nil {
				continue
			}

			var scaled float64
			switch {
			case n <= 10:
				scaled = n / 10 * float64(maxPoints)
			case n <= 100:
				scaled = n / 100 * float64(maxPoints)
			default:
				continue
			}

			if bestPos < 0 || loc[0] < bestPos {
				bestPos = loc[0]
				bestVal = scaled
			}
			break // first acceptable occurrence per pattern
		}
	}

	if bestPos < 0 {
		return 0, false
	}
	return clampScore(roundTenth(bestVal), maxPoints), true
}

// extractItemizedScores averages per-line and numbered-list sub-scores,
// always assumed out of 10.
func extractItemizedScores(text string, maxPoints int) (float64, bool) {
	var nums []float64
	for _, m := range lineScoreRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			nums = append(nums, n)
		}
	}
	for _, m := range numberedItemRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			nums = append(nums, n)
		}
	}
	return averageOutOfTen(nums, maxPoints)
}

// extractParenthesizedScores averages "Score (N/D)" mentions, the weakest
// signal in the cascade.
func extractParenthesizedScores(text string, maxPoints int) (float64, bool) {
	var nums []float64
	for _, m := range parenScoreRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			nums = append(nums, n)
		}
	}
	return averageOutOfTen(nums, maxPoints)
}

func averageOutOfTen(nums []float64, maxPoints int) (float64, bool) {
	if len(nums) == 0 {
		return 0, false
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	avg := sum / float64(len(nums))
	return clampScore(roundTenth(avg/10*float64(maxPoints)), maxPoints), true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64, maxPoints int) float64 {
	return math.Max(0, math.Min(v, float64(maxPoints)))
}
