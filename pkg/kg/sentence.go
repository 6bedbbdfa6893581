package kg

import "strings"

func isSentenceTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// SplitSentences splits a text segment into sentence-like units. Each unit
// keeps the terminator that ended it in the source (period, exclamation or
// question mark, half- or full-width). Fragments that are empty or
// whitespace-only are dropped. When the input contains no terminator at
// all, the entire input is returned as a single element.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var fragment strings.Builder

	for _, r := range text {
		if !isSentenceTerminator(r) {
			fragment.WriteRune(r)
			continue
		}
		if s := strings.TrimSpace(fragment.String()); s != "" {
			sentences = append(sentences, s+string(r))
		}
		fragment.Reset()
	}

	if rest := strings.TrimSpace(fragment.String()); rest != "" {
		sentences = append(sentences, rest)
	}

	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}
