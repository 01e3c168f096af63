package analysis

import (
	"fmt"
	"strings"

	"github.com/xxxsen/pkf/internal/model"
)

// PatternCandidate is a detected manipulation tactic. Detection flags
// formatting and phrasing patterns only; it never judges the content's
// claims.
type PatternCandidate struct {
	PatternType    string
	MatchedPhrases []string
	Context        string
	Intensity      float64
	Explanation    string
}

var outrageKeywords = []string{
	"outrageous", "shocking", "unbelievable", "insane", "crazy",
	"you won't believe", "disgusting", "horrifying",
}

var urgencyKeywords = []string{
	"act now", "hurry", "limited time", "don't miss",
	"urgent", "immediately", "breaking",
}

// DetectEmotionalPatterns scans normalized content for outrage bait,
// false urgency and hyperbole.
func DetectEmotionalPatterns(content string) []PatternCandidate {
	var patterns []PatternCandidate

	if matches := findKeywordMatches(content, outrageKeywords); len(matches) > 0 {
		patterns = append(patterns, PatternCandidate{
			PatternType:    model.PatternOutrage,
			MatchedPhrases: matches,
			Context:        keywordContext(content, matches[0], 100),
			Intensity:      capIntensity(float64(len(matches)) / 5.0),
			Explanation:    "This content uses outrage-inducing language that may trigger emotional responses rather than thoughtful analysis.",
		})
	}

	if matches := findKeywordMatches(content, urgencyKeywords); len(matches) > 0 {
		patterns = append(patterns, PatternCandidate{
			PatternType:    model.PatternUrgency,
			MatchedPhrases: matches,
			Context:        keywordContext(content, matches[0], 100),
			Intensity:      capIntensity(float64(len(matches)) / 3.0),
			Explanation:    "Uses urgency language that may pressure quick reactions rather than careful consideration.",
		})
	}

	if exclamations := strings.Count(content, "!"); exclamations > 5 {
		patterns = append(patterns, PatternCandidate{
			PatternType:    model.PatternHyperbole,
			MatchedPhrases: []string{fmt.Sprintf("%d exclamation points", exclamations)},
			Intensity:      capIntensity(float64(exclamations) / 20.0),
			Explanation:    "Excessive use of exclamation points may indicate emotional rather than informational content.",
		})
	}

	return patterns
}

func capIntensity(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}

func findKeywordMatches(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var matches []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matches = append(matches, kw)
		}
	}
	return matches
}

// keywordContext returns the keyword with up to contextChars of
// surrounding text on each side.
func keywordContext(text string, keyword string, contextChars int) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(keyword))
	if idx < 0 {
		return ""
	}
	start := idx - contextChars
	if start < 0 {
		start = 0
	}
	end := idx + len(keyword) + contextChars
	if end > len(text) {
		end = len(text)
	}
	context := text[start:end]
	if start > 0 {
		context = "..." + context
	}
	if end < len(text) {
		context = context + "..."
	}
	return context
}
