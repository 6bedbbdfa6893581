package kg

import (
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultMaxChunkLen bounds the number of characters submitted to the
	// model per chunk.
	DefaultMaxChunkLen = 3000

	// mergeParagraphLen is the length below which a paragraph is always
	// merge-attempted into the current chunk.
	mergeParagraphLen = 100

	paragraphSep = "\n\n"
	sentenceSep  = " "
)

// Chunk is one ordered, contiguous slice of the document text submitted as
// a single extraction unit. Identity is the position in the chunk sequence;
// chunks are never mutated after creation.
type Chunk struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// SplitChunks splits document text into an ordered sequence of chunks of
// at most maxLen characters. Paragraphs are the primary unit: short ones
// are merged, oversized ones fall back to sentence granularity. A single
// sentence longer than maxLen is never split further and is emitted as an
// oversized chunk, trading strict size enforcement for semantic integrity.
//
// maxLen counts characters, not bytes; non-positive values fall back to
// DefaultMaxChunkLen.
func SplitChunks(text string, maxLen int) ([]Chunk, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxChunkLen
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if utf8.RuneCountInString(text) <= maxLen {
		return newChunks([]string{text})
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
		currentLen = 0
	}

	fits := func(segment, sep string) bool {
		segLen := utf8.RuneCountInString(segment)
		if currentLen == 0 {
			return segLen <= maxLen
		}
		return currentLen+utf8.RuneCountInString(sep)+segLen <= maxLen
	}

	appendSegment := func(segment, sep string) {
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += utf8.RuneCountInString(sep)
		}
		current.WriteString(segment)
		currentLen += utf8.RuneCountInString(segment)
	}

	for _, paragraph := range splitParagraphs(text) {
		switch {
		case utf8.RuneCountInString(paragraph) < mergeParagraphLen:
			if !fits(paragraph, paragraphSep) {
				flush()
			}
			appendSegment(paragraph, paragraphSep)
		case utf8.RuneCountInString(paragraph) > maxLen:
			for _, sentence := range SplitSentences(paragraph) {
				if !fits(sentence, sentenceSep) {
					flush()
				}
				appendSegment(sentence, sentenceSep)
			}
		default:
			if !fits(paragraph, paragraphSep) {
				flush()
			}
			appendSegment(paragraph, paragraphSep)
		}
	}
	flush()

	return newChunks(parts)
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		paragraphs = append(paragraphs, paragraph)
	}
	return paragraphs
}

func newChunks(parts []string) ([]Chunk, error) {
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{
			ID:    id,
			Index: i,
			Text:  part,
		})
	}
	return chunks, nil
}
