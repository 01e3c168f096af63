package service

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/xxxsen/pkf/internal/model"
)

// Snippet analysis flags persuasion, density and style signals on a
// short text without touching storage. Every insight carries an
// explanation and a confidence, never a truth judgment.

var urgencyPhrases = []string{
	"act now",
	"urgent",
	"immediately",
	"must",
	"right now",
	"before it's too late",
	"shocking",
	"you won't believe",
	"wake up",
	"they don't want you to know",
}

var aiPhrases = []string{
	"in conclusion",
	"as an ai",
	"it is important to note",
	"overall",
	"to summarize",
	"in summary",
	"additionally",
	"moreover",
	"furthermore",
}

var (
	sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)
	capsWordRegex      = regexp.MustCompile(`\b[A-Z]{4,}\b`)
	bulletLineRegex    = regexp.MustCompile(`(^|\n)\s*[-*]\s+`)
)

// HashSnippet builds a stable dedupe key: lowercase the text and
// collapse all whitespace before hashing.
func HashSnippet(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// SeenStore answers whether a snippet hash was seen before and records
// it if not.
type SeenStore interface {
	SeenBefore(userID, hash string) bool
}

// SnippetFlags switches individual detectors on or off per request.
type SnippetFlags struct {
	Repetition     bool
	CognitiveLoad  bool
	Misinformation bool
	AIStyle        bool
}

func DefaultSnippetFlags() SnippetFlags {
	return SnippetFlags{
		Repetition:     true,
		CognitiveLoad:  true,
		Misinformation: true,
		AIStyle:        true,
	}
}

// AnalyzeSnippet runs the enabled heuristic detectors over one snippet.
// A nil seen store disables the repetition signal regardless of flags.
func AnalyzeSnippet(text string, userID string, seen SeenStore, flags SnippetFlags) []model.Insight {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return nil
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var insights []model.Insight
	if flags.Repetition && seen != nil && seen.SeenBefore(userID, HashSnippet(cleaned)) {
		insights = append(insights, model.Insight{
			ID:           newID(),
			Type:         model.InsightRepetition,
			Confidence:   0.75,
			Explanation:  "This looks very similar to something you just saw. Repetition can reduce signal and increase mental fatigue.",
			AffectedText: truncateSnippet(cleaned),
			CreatedAt:    createdAt,
		})
	}

	words := strings.Fields(cleaned)
	wordCount := len(words)
	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := 0.0
	if wordCount > 0 {
		avgWordLen = float64(totalLen) / float64(wordCount)
	}
	var sentences []string
	for _, s := range sentenceSplitRegex.Split(cleaned, -1) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	avgSentenceWords := float64(wordCount)
	if len(sentences) > 0 {
		sum := 0
		for _, s := range sentences {
			sum += len(strings.Fields(s))
		}
		avgSentenceWords = float64(sum) / float64(len(sentences))
	}

	if flags.CognitiveLoad {
		if insight, ok := detectCognitiveLoad(cleaned, wordCount, avgSentenceWords, avgWordLen, createdAt); ok {
			insights = append(insights, insight)
		}
	}
	if flags.Misinformation {
		if insight, ok := detectMisinformation(cleaned, createdAt); ok {
			insights = append(insights, insight)
		}
	}
	if flags.AIStyle {
		if insight, ok := detectAIStyle(text, cleaned, avgSentenceWords, createdAt); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

func detectCognitiveLoad(cleaned string, wordCount int, avgSentenceWords, avgWordLen float64, createdAt string) (model.Insight, bool) {
	score := 0.0
	if wordCount >= 90 {
		score += 0.35
	}
	if avgSentenceWords >= 22 {
		score += 0.35
	}
	if avgWordLen >= 5.3 {
		score += 0.15
	}
	if strings.Count(cleaned, ",") >= 6 {
		score += 0.15
	}
	if score < 0.55 {
		return model.Insight{}, false
	}
	return model.Insight{
		ID:           newID(),
		Type:         model.InsightCognitiveLoad,
		Confidence:   clampRange(score, 0.55, 0.9),
		Explanation:  "This snippet looks mentally dense (long sentences / lots of clauses). Consider slowing down or taking breaks.",
		AffectedText: truncateSnippet(cleaned),
		CreatedAt:    createdAt,
	}, true
}

func detectMisinformation(cleaned string, createdAt string) (model.Insight, bool) {
	lower := strings.ToLower(cleaned)
	exclam := strings.Count(cleaned, "!")
	capsWords := 0
	for _, w := range capsWordRegex.FindAllString(cleaned, -1) {
		if isAlpha(w) {
			capsWords++
		}
	}
	urgencyHit := false
	for _, phrase := range urgencyPhrases {
		if strings.Contains(lower, phrase) {
			urgencyHit = true
			break
		}
	}

	score := 0.0
	if exclam >= 3 {
		score += 0.25
	}
	if capsWords >= 2 {
		score += 0.25
	}
	if urgencyHit {
		score += 0.35
	}
	if strings.Contains(cleaned, "?") && exclam > 0 {
		score += 0.10
	}
	if score < 0.45 {
		return model.Insight{}, false
	}

	var whyBits []string
	if urgencyHit {
		whyBits = append(whyBits, "urgency phrasing")
	}
	if exclam >= 3 {
		whyBits = append(whyBits, "heavy exclamation")
	}
	if capsWords >= 2 {
		whyBits = append(whyBits, "all-caps emphasis")
	}
	why := "persuasion-style formatting"
	if len(whyBits) > 0 {
		why = strings.Join(whyBits, ", ")
	}
	return model.Insight{
		ID:         newID(),
		Type:       model.InsightMisinformation,
		Confidence: clampRange(score, 0.45, 0.85),
		Explanation: "This resembles persuasion/emotional framing signals (" + why + "). " +
			"This is not a truth judgment, just a pattern warning with reasons.",
		AffectedText: truncateSnippet(cleaned),
		CreatedAt:    createdAt,
	}, true
}

func detectAIStyle(raw, cleaned string, avgSentenceWords float64, createdAt string) (model.Insight, bool) {
	lower := strings.ToLower(cleaned)
	phraseHit := false
	for _, phrase := range aiPhrases {
		if strings.Contains(lower, phrase) {
			phraseHit = true
			break
		}
	}
	bullets := len(bulletLineRegex.FindAllString(raw, -1))
	repeatedTransitions := strings.Count(lower, "additionally") +
		strings.Count(lower, "moreover") +
		strings.Count(lower, "furthermore")

	score := 0.0
	if phraseHit {
		score += 0.35
	}
	if repeatedTransitions >= 2 {
		score += 0.25
	}
	if bullets >= 3 {
		score += 0.10
	}
	if avgSentenceWords >= 24 {
		score += 0.10
	}
	if score < 0.50 {
		return model.Insight{}, false
	}

	var bits []string
	if phraseHit {
		bits = append(bits, "templated phrasing")
	}
	if repeatedTransitions >= 2 {
		bits = append(bits, "repeated transitions")
	}
	if avgSentenceWords >= 24 {
		bits = append(bits, "very uniform long sentences")
	}
	why := "stylistic signals"
	if len(bits) > 0 {
		why = strings.Join(bits, ", ")
	}
	return model.Insight{
		ID:         newID(),
		Type:       model.InsightAI,
		Confidence: clampRange(score, 0.50, 0.85),
		Explanation: "This text shows signals that can resemble AI-generated writing (" + why + "). " +
			"This can be wrong, treat it as a gentle prompt to verify.",
		AffectedText: truncateSnippet(cleaned),
		CreatedAt:    createdAt,
	}, true
}

// truncateSnippet collapses whitespace and caps the text at 320 runes,
// appending an ellipsis when cut.
func truncateSnippet(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= 320 {
		return collapsed
	}
	return strings.TrimRight(string(runes[:319]), " ") + "…"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
