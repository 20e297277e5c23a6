package analysis

import "fmt"

// Qualitative bands for 3PL parameters, used both in the fallback
// commentary and as grounding context in the LLM prompt. The
// discrimination bands follow Baker's conventional labels.

// DescribeDiscrimination maps param a to a qualitative label.
func DescribeDiscrimination(a float64) string {
	switch {
	case a < 0.35:
		return "very low discrimination"
	case a < 0.65:
		return "low discrimination"
	case a < 1.35:
		return "moderate discrimination"
	case a < 1.7:
		return "high discrimination"
	default:
		return "very high discrimination"
	}
}

// DescribeDifficulty maps param b (on the theta scale) to a qualitative
// label.
func DescribeDifficulty(b float64) string {
	switch {
	case b < -2:
		return "very easy"
	case b < -0.5:
		return "easy"
	case b <= 0.5:
		return "medium difficulty"
	case b <= 2:
		return "hard"
	default:
		return "very hard"
	}
}

// DescribeGuessing maps param c to a qualitative label. For a five-
// alternative multiple-choice item, blind guessing sits around 0.2.
func DescribeGuessing(c float64) string {
	switch {
	case c < 0.15:
		return "below chance-level guessing"
	case c <= 0.25:
		return "chance-level guessing"
	default:
		return "above chance-level guessing"
	}
}

// FallbackCommentary produces a deterministic parameter interpretation
// when no LLM client is configured or the draft call fails.
func FallbackCommentary(a, b, c float64) string {
	return fmt.Sprintf(
		"Item with %s (a=%.2f), %s (b=%.2f), and %s (c=%.2f). "+
			"It separates examinees most sharply around theta=%.2f.",
		DescribeDiscrimination(a), a,
		DescribeDifficulty(b), b,
		DescribeGuessing(c), c,
		b,
	)
}
