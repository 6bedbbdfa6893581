package doc

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rotodiag/bearingkg/pkg/loader"
)

const docXMLMax = 50 << 20

// DocDocumentParser parses Word documents (.docx) into plain text. The raw
// container bytes are obtained from an inner parser, typically the
// filesystem one, so the same implementation works for any byte source.
type DocDocumentParser struct {
	source loader.DocumentParser

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewDocDocumentParser creates a Word document parser that extracts text
// from the docx XML.
func NewDocDocumentParser(source loader.DocumentParser) *DocDocumentParser {
	return &DocDocumentParser{
		source: source,
		cache:  make(map[string][]byte),
	}
}

// ParseText extracts plain text content from a Word document.
func (l *DocDocumentParser) ParseText(ctx context.Context, file loader.DocumentFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.source.ParseText(ctx, file)
		if err != nil {
			return nil, err
		}

		text, err := parseDocx(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// ParseTextFromIO extracts plain text from a Word document provided as an
// io.Reader.
func ParseTextFromIO(ctx context.Context, input io.Reader) ([]byte, error) {
	content, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	return parseDocx(content)
}
