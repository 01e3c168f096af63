package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMarkdownStripsFormatting(t *testing.T) {
	src := "# Heading\n\nSome **bold** and *italic* text with a [link](https://example.com).\n\n![image](https://example.com/img.png)\n\n- item one\n- item two\n"
	got := NormalizeMarkdown(src)
	require.Contains(t, got, "Heading")
	require.Contains(t, got, "Some bold and italic text with a link")
	require.Contains(t, got, "item one")
	require.NotContains(t, got, "**")
	require.NotContains(t, got, "](")
	require.NotContains(t, got, "img.png")
}

func TestCleanWhitespaceCollapsesRuns(t *testing.T) {
	got := CleanWhitespace("a   b\n\n\n\nc  d\r\ne")
	require.Equal(t, "a b\n\nc d\ne", got)
}

func TestNormalizeTextRemovesURLs(t *testing.T) {
	got := NormalizeText("read this https://example.com/path?q=1 now")
	require.NotContains(t, got, "example.com")
	require.Contains(t, got, "read this")
}

func TestReadTimeMinutes(t *testing.T) {
	require.Equal(t, 1, ReadTimeMinutes(0))
	require.Equal(t, 1, ReadTimeMinutes(150))
	require.Equal(t, 2, ReadTimeMinutes(450))
}

func TestChunkTextSplitsAndCoversAllWords(t *testing.T) {
	var paras []string
	for i := 0; i < 10; i++ {
		paras = append(paras, strings.Repeat("word ", 60))
	}
	src := strings.Join(paras, "\n\n")
	chunks := ChunkText(src, 200)
	require.Greater(t, len(chunks), 1)

	total := 0
	for _, c := range chunks {
		words := len(strings.Fields(c))
		require.LessOrEqual(t, words, 200)
		total += words
	}
	require.Equal(t, 600, total)
}

func TestChunkTextOversizedParagraph(t *testing.T) {
	src := strings.Repeat("word ", 500)
	chunks := ChunkText(src, 200)
	require.Len(t, chunks, 3)
	require.Equal(t, 100, len(strings.Fields(chunks[2])))
}

func TestChunkTextEmpty(t *testing.T) {
	require.Nil(t, ChunkText("   \n\n  ", 200))
}
