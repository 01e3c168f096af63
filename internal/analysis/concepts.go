package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// ConceptMention is one distinct topic found in a document, with how
// often it appears and a frequency-normalized relevance.
type ConceptMention struct {
	Name           string
	NormalizedName string
	MentionCount   int
	Relevance      float64
}

var conceptStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"and": {}, "or": {}, "but": {}, "of": {}, "in": {}, "on": {}, "for": {}, "with": {},
	"to": {}, "from": {}, "by": {}, "at": {}, "as": {}, "it": {}, "its": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "has": {}, "have": {}, "had": {},
	"not": {}, "no": {}, "so": {}, "if": {}, "then": {}, "than": {}, "there": {}, "their": {},
	"they": {}, "we": {}, "you": {}, "i": {}, "he": {}, "she": {}, "his": {}, "her": {},
	"what": {}, "which": {}, "when": {}, "where": {}, "who": {}, "how": {}, "why": {},
	"all": {}, "any": {}, "some": {}, "more": {}, "most": {}, "other": {}, "into": {},
	"about": {}, "after": {}, "before": {}, "over": {}, "under": {}, "between": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "should": {}, "may": {}, "might": {},
	"do": {}, "does": {}, "did": {}, "also": {}, "just": {}, "only": {}, "very": {},
}

var capitalizedPhraseRegex = regexp.MustCompile(`\b[A-Z][A-Za-z0-9'’-]+(?:\s+[A-Z][A-Za-z0-9'’-]+)*\b`)

var wordRegex = regexp.MustCompile(`[a-zA-Z][a-zA-Z'’-]*`)

// ExtractConcepts finds topic mentions using two heuristics: runs of
// capitalized words (named entities) and repeated multi-word phrases.
// A real NLP pipeline can replace this without touching callers; the
// output contract is all the scoring core depends on.
func ExtractConcepts(normalized string, wordCount int) []ConceptMention {
	counts := map[string]int{}
	display := map[string]string{}

	for _, phrase := range capitalizedPhraseRegex.FindAllString(normalized, -1) {
		norm := NormalizeConceptName(phrase)
		if len(norm) < 3 {
			continue
		}
		if _, stop := conceptStopWords[norm]; stop {
			continue
		}
		counts[norm]++
		if _, ok := display[norm]; !ok {
			display[norm] = strings.TrimSpace(phrase)
		}
	}

	for norm, count := range repeatedBigrams(normalized) {
		if _, seen := counts[norm]; seen {
			continue
		}
		counts[norm] = count
		display[norm] = norm
	}

	mentions := make([]ConceptMention, 0, len(counts))
	for norm, count := range counts {
		mentions = append(mentions, ConceptMention{
			Name:           display[norm],
			NormalizedName: norm,
			MentionCount:   count,
			Relevance:      relevanceScore(count, wordCount),
		})
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].MentionCount != mentions[j].MentionCount {
			return mentions[i].MentionCount > mentions[j].MentionCount
		}
		return mentions[i].NormalizedName < mentions[j].NormalizedName
	})
	return mentions
}

// repeatedBigrams returns normalized two-word phrases that occur at
// least twice and contain no stop words.
func repeatedBigrams(text string) map[string]int {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)
	counts := map[string]int{}
	for i := 0; i+1 < len(words); i++ {
		w1, w2 := words[i], words[i+1]
		if len(w1) < 3 || len(w2) < 3 {
			continue
		}
		if _, stop := conceptStopWords[w1]; stop {
			continue
		}
		if _, stop := conceptStopWords[w2]; stop {
			continue
		}
		counts[w1+" "+w2]++
	}
	for phrase, count := range counts {
		if count < 2 {
			delete(counts, phrase)
		}
	}
	return counts
}

// NormalizeConceptName lowercases the phrase and drops leading
// articles so "The Climate Crisis" and "climate crisis" dedupe.
func NormalizeConceptName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	words := strings.Fields(normalized)
	out := make([]string, 0, len(words))
	for _, w := range words {
		switch w {
		case "the", "a", "an", "this", "that", "these", "those":
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func relevanceScore(mentions int, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	relevance := float64(mentions) / (float64(wordCount) / 100.0)
	if relevance > 1.0 {
		relevance = 1.0
	}
	return relevance
}
