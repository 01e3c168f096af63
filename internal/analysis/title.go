package analysis

import (
	"regexp"
	"strings"
)

const maxTitleLength = 100

var headingPrefixRegex = regexp.MustCompile(`^#+\s+`)

// ExtractTitle picks a title from content: the first non-empty line,
// with any markdown heading marker stripped.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = headingPrefixRegex.ReplaceAllString(line, "")
		if len(line) > maxTitleLength {
			line = line[:maxTitleLength-3] + "..."
		}
		return line
	}
	return "Untitled Document"
}
