package io

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rotodiag/bearingkg/pkg/loader"
)

// IODocumentParser reads documents directly from the local filesystem with
// caching. It returns the raw file content, which is the plain text for
// .txt and .md documents and the container bytes for formats that wrap it
// with another parser.
type IODocumentParser struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIODocumentParser creates a new filesystem-based document parser.
func NewIODocumentParser() *IODocumentParser {
	return &IODocumentParser{
		cache: make(map[string][]byte),
	}
}

// ParseText reads the file content from the filesystem. Results are cached.
func (l *IODocumentParser) ParseText(ctx context.Context, file loader.DocumentFile) ([]byte, error) {
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

		result, err := os.ReadFile(file.FilePath)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
