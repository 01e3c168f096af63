package analysis

import (
	"regexp"
	"strings"

	"github.com/xxxsen/pkf/internal/model"
)

// ClaimCandidate is an extracted sentence-level statement. The scoring
// core only counts claims; the type tag is kept for consumers.
type ClaimCandidate struct {
	Text           string
	NormalizedText string
	ClaimType      string
	Confidence     float64
}

var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

var digitRegex = regexp.MustCompile(`\d`)

var verbHints = map[string]struct{}{
	"is": {}, "are": {}, "was": {}, "were": {}, "has": {}, "have": {}, "had": {},
	"will": {}, "shows": {}, "showed": {}, "show": {}, "found": {}, "finds": {},
	"said": {}, "says": {}, "reported": {}, "reports": {}, "announced": {},
	"increased": {}, "decreased": {}, "rose": {}, "fell": {}, "grew": {},
	"estimates": {}, "estimated": {}, "predicts": {}, "predicted": {},
	"according": {}, "confirmed": {}, "revealed": {}, "suggests": {}, "suggested": {},
	"became": {}, "remains": {}, "means": {}, "caused": {}, "causes": {},
}

// ExtractClaims picks sentences that look like concrete statements:
// long enough, carrying a number or named entity, and containing a
// verb-like token.
func ExtractClaims(normalized string) []ClaimCandidate {
	var claims []ClaimCandidate
	for _, sent := range SplitSentences(normalized) {
		if !isFactualSentence(sent) {
			continue
		}
		claims = append(claims, ClaimCandidate{
			Text:           sent,
			NormalizedText: strings.ToLower(strings.TrimSpace(sent)),
			ClaimType:      classifyClaim(sent),
			Confidence:     0.7,
		})
	}
	return claims
}

func SplitSentences(text string) []string {
	parts := sentenceSplitRegex.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isFactualSentence(sent string) bool {
	words := strings.Fields(sent)
	if len(words) < 5 {
		return false
	}
	hasSignal := digitRegex.MatchString(sent) || hasNamedEntity(words)
	if !hasSignal {
		return false
	}
	return hasVerb(words)
}

// hasNamedEntity looks for a capitalized word past the first position.
func hasNamedEntity(words []string) bool {
	for _, w := range words[1:] {
		r := []rune(w)
		if len(r) >= 2 && r[0] >= 'A' && r[0] <= 'Z' {
			return true
		}
	}
	return false
}

func hasVerb(words []string) bool {
	for _, w := range words {
		lw := strings.ToLower(strings.Trim(w, ",;:'\""))
		if _, ok := verbHints[lw]; ok {
			return true
		}
	}
	return false
}

func classifyClaim(sent string) string {
	lower := strings.ToLower(sent)
	if digitRegex.MatchString(sent) {
		for _, marker := range []string{"percent", "%", "million", "billion", "thousand"} {
			if strings.Contains(lower, marker) {
				return model.ClaimTypeStatistic
			}
		}
	}
	for _, marker := range []string{"will", "predict", "forecast", "expect", "estimate"} {
		if strings.Contains(lower, marker) {
			return model.ClaimTypePrediction
		}
	}
	for _, marker := range []string{"think", "believe", "feel", "opinion", "should"} {
		if strings.Contains(lower, marker) {
			return model.ClaimTypeOpinion
		}
	}
	return model.ClaimTypeFactual
}
