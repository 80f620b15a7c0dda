package translate

import (
	"strings"
	"unicode/utf8"
)

const sentenceBreak = ". "

// SplitChunks splits text on sentence breaks so that every chunk holds at
// most maxRunes runes. A single sentence longer than maxRunes is cut on
// rune boundaries.
func SplitChunks(text string, maxRunes int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return []string{text}
	}

	sentences := strings.SplitAfter(text, sentenceBreak)

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		size = 0
	}

	for _, sentence := range sentences {
		n := utf8.RuneCountInString(sentence)
		if n > maxRunes {
			flush()
			chunks = append(chunks, cutRunes(sentence, maxRunes)...)
			continue
		}
		if size+n > maxRunes {
			flush()
		}
		current.WriteString(sentence)
		size += n
	}
	flush()
	return chunks
}

func cutRunes(s string, maxRunes int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > 0 {
		n := maxRunes
		if n > len(runes) {
			n = len(runes)
		}
		if part := strings.TrimSpace(string(runes[:n])); part != "" {
			out = append(out, part)
		}
		runes = runes[n:]
	}
	return out
}
