package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/model"
)

func TestHashSnippetNormalizes(t *testing.T) {
	require.Equal(t, HashSnippet("Hello   World"), HashSnippet("hello world"))
	require.NotEqual(t, HashSnippet("hello world"), HashSnippet("hello worlds"))
}

func TestAnalyzeSnippetEmpty(t *testing.T) {
	require.Empty(t, AnalyzeSnippet("", "u1", nil, DefaultSnippetFlags()))
	require.Empty(t, AnalyzeSnippet("   \n\t ", "u1", nil, DefaultSnippetFlags()))
}

func TestAnalyzeSnippetMisinformation(t *testing.T) {
	insights := AnalyzeSnippet("ACT NOW!!! This is SHOCKING and URGENT!!!", "u1", nil, DefaultSnippetFlags())
	require.Len(t, insights, 1)

	insight := insights[0]
	require.Equal(t, model.InsightMisinformation, insight.Type)
	require.InDelta(t, 0.85, insight.Confidence, 1e-9)
	require.Contains(t, insight.Explanation, "urgency phrasing")
	require.Contains(t, insight.Explanation, "heavy exclamation")
	require.Contains(t, insight.Explanation, "all-caps emphasis")
	require.NotEmpty(t, insight.ID)
	require.NotEmpty(t, insight.CreatedAt)
}

func TestAnalyzeSnippetCognitiveLoad(t *testing.T) {
	// One unbroken 95-word sentence of long words: word count, sentence
	// length and average word length all trip.
	text := strings.TrimSpace(strings.Repeat("considerable ", 95))
	insights := AnalyzeSnippet(text, "u1", nil, DefaultSnippetFlags())
	require.Len(t, insights, 1)

	insight := insights[0]
	require.Equal(t, model.InsightCognitiveLoad, insight.Type)
	require.InDelta(t, 0.85, insight.Confidence, 1e-9)
	require.Contains(t, insight.Explanation, "mentally dense")
}

func TestAnalyzeSnippetAIStyle(t *testing.T) {
	text := "In conclusion, the results were positive. Additionally, the team improved. Moreover, the outlook is good."
	insights := AnalyzeSnippet(text, "u1", nil, DefaultSnippetFlags())
	require.Len(t, insights, 1)

	insight := insights[0]
	require.Equal(t, model.InsightAI, insight.Type)
	require.InDelta(t, 0.6, insight.Confidence, 1e-9)
	require.Contains(t, insight.Explanation, "templated phrasing")
	require.Contains(t, insight.Explanation, "repeated transitions")
}

func TestAnalyzeSnippetPlainTextQuiet(t *testing.T) {
	insights := AnalyzeSnippet("The cafe on the corner serves good coffee.", "u1", nil, DefaultSnippetFlags())
	require.Empty(t, insights)
}

func TestAnalyzeSnippetRepetition(t *testing.T) {
	seen := newLRUSeenStore()
	text := "The cafe on the corner serves good coffee."

	first := AnalyzeSnippet(text, "u1", seen, DefaultSnippetFlags())
	require.Empty(t, first)

	second := AnalyzeSnippet(text, "u1", seen, DefaultSnippetFlags())
	require.Len(t, second, 1)
	require.Equal(t, model.InsightRepetition, second[0].Type)
	require.InDelta(t, 0.75, second[0].Confidence, 1e-9)

	// A different user has their own history.
	other := AnalyzeSnippet(text, "u2", seen, DefaultSnippetFlags())
	require.Empty(t, other)
}

func TestAnalyzeSnippetStableAcrossRuns(t *testing.T) {
	text := "ACT NOW!!! This is SHOCKING and URGENT!!!"
	first := AnalyzeSnippet(text, "u1", nil, DefaultSnippetFlags())
	second := AnalyzeSnippet(text, "u1", nil, DefaultSnippetFlags())
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.Equal(t, first[0].Type, second[0].Type)
	require.Equal(t, first[0].Confidence, second[0].Confidence)
	require.Equal(t, first[0].Explanation, second[0].Explanation)
	require.Equal(t, first[0].AffectedText, second[0].AffectedText)
}

func TestAnalyzeSnippetDetectorFlags(t *testing.T) {
	text := "ACT NOW!!! This is SHOCKING and URGENT!!!"

	flags := DefaultSnippetFlags()
	flags.Misinformation = false
	require.Empty(t, AnalyzeSnippet(text, "u1", nil, flags))

	// The remaining detectors still run with one switched off.
	dense := strings.TrimSpace(strings.Repeat("considerable ", 95))
	insights := AnalyzeSnippet(dense, "u1", nil, flags)
	require.Len(t, insights, 1)
	require.Equal(t, model.InsightCognitiveLoad, insights[0].Type)

	flags = DefaultSnippetFlags()
	flags.Repetition = false
	seen := newLRUSeenStore()
	plain := "The cafe on the corner serves good coffee."
	require.Empty(t, AnalyzeSnippet(plain, "u1", seen, flags))
	require.Empty(t, AnalyzeSnippet(plain, "u1", seen, flags))
}

func TestTruncateSnippet(t *testing.T) {
	short := "short text"
	require.Equal(t, short, truncateSnippet(short))

	long := strings.Repeat("word ", 100)
	out := truncateSnippet(long)
	require.LessOrEqual(t, len([]rune(out)), 320)
	require.True(t, strings.HasSuffix(out, "…"))
}
