package analysis

import "strings"

const defaultChunkWords = 200

// ChunkText splits normalized text into ordered chunks of roughly
// maxWords words, keeping paragraphs together where possible. Every
// word of the input lands in exactly one chunk.
func ChunkText(normalized string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = defaultChunkWords
	}
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return nil
	}

	var chunks []string
	var current []string
	var currentWords int

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n\n"))
		current = nil
		currentWords = 0
	}

	for _, para := range strings.Split(trimmed, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		words := strings.Fields(para)
		if len(words) > maxWords {
			// Oversized paragraph: flush what we have and hard-split it.
			flush()
			for start := 0; start < len(words); start += maxWords {
				end := start + maxWords
				if end > len(words) {
					end = len(words)
				}
				chunks = append(chunks, strings.Join(words[start:end], " "))
			}
			continue
		}
		if currentWords+len(words) > maxWords {
			flush()
		}
		current = append(current, para)
		currentWords += len(words)
	}
	flush()
	return chunks
}
