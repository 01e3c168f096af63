package analysis

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/xxxsen/pkf/internal/model"
)

var (
	multiSpaceRegex   = regexp.MustCompile(` +`)
	multiNewlineRegex = regexp.MustCompile(`\n\s*\n\s*\n+`)
	urlRegex          = regexp.MustCompile(`https?://[^\s]+`)
)

// Normalize cleans raw content into plain text suitable for analysis.
// HTML and web content is expected to arrive pre-extracted from the
// ingestion side; it only gets whitespace and URL cleanup here.
func Normalize(contentType string, raw string) string {
	switch contentType {
	case model.ContentTypeMarkdown:
		return NormalizeMarkdown(raw)
	default:
		return NormalizeText(raw)
	}
}

// NormalizeMarkdown strips markdown structure while keeping the prose,
// walking the goldmark AST instead of regex-stripping syntax.
func NormalizeMarkdown(src string) string {
	source := []byte(src)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch node := n.(type) {
			case *ast.Image:
				return ast.WalkSkipChildren, nil
			case *ast.Text:
				buf.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.FencedCodeBlock:
				writeCodeLines(&buf, node.BaseBlock, source)
				return ast.WalkSkipChildren, nil
			case *ast.CodeBlock:
				writeCodeLines(&buf, node.BaseBlock, source)
				return ast.WalkSkipChildren, nil
			case *ast.AutoLink:
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			buf.WriteString("\n\n")
		}
		return ast.WalkContinue, nil
	})
	return CleanWhitespace(buf.String())
}

func writeCodeLines(buf *strings.Builder, block ast.BaseBlock, source []byte) {
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	buf.WriteString("\n\n")
}

func NormalizeText(src string) string {
	cleaned := urlRegex.ReplaceAllString(src, "")
	return CleanWhitespace(cleaned)
}

// CleanWhitespace collapses runs of spaces and caps blank runs at one
// empty line, preserving paragraph breaks.
func CleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = multiNewlineRegex.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTimeMinutes estimates reading time at roughly 200 words per
// minute, never reporting less than one minute.
func ReadTimeMinutes(wordCount int) int {
	if wordCount <= 0 {
		return 1
	}
	minutes := wordCount / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
