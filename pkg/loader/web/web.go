package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rotodiag/bearingkg/pkg/loader"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// WebDocumentParser fetches documents over HTTP. HTML responses go
// through readability to extract the main article text, everything
// else is returned as the raw response body.
type WebDocumentParser struct {
	client   *http.Client
	fallback loader.DocumentParser

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebDocumentParser creates a web parser without a fallback for
// non-HTML content.
func NewWebDocumentParser() *WebDocumentParser {
	return &WebDocumentParser{
		client: http.DefaultClient,
		cache:  make(map[string][]byte),
	}
}

// NewWebDocumentParserWithFallback creates a web parser that hands
// non-HTML responses to the given parser.
func NewWebDocumentParserWithFallback(fallback loader.DocumentParser) *WebDocumentParser {
	return &WebDocumentParser{
		client:   http.DefaultClient,
		fallback: fallback,
		cache:    make(map[string][]byte),
	}
}

// SetClient overrides the HTTP client used for fetches.
func (p *WebDocumentParser) SetClient(client *http.Client) {
	p.client = client
}

func (p *WebDocumentParser) ParseText(ctx context.Context, file loader.DocumentFile) ([]byte, error) {
	key := loader.CacheKey(file)

	p.cacheMu.RLock()
	if cached, ok := p.cache[key]; ok {
		p.cacheMu.RUnlock()
		return cached, nil
	}
	p.cacheMu.RUnlock()

	result, err, _ := p.group.Do(key, func() (any, error) {
		p.cacheMu.RLock()
		if cached, ok := p.cache[key]; ok {
			p.cacheMu.RUnlock()
			return cached, nil
		}
		p.cacheMu.RUnlock()

		text, err := p.fetch(ctx, file)
		if err != nil {
			return nil, err
		}

		p.cacheMu.Lock()
		p.cache[key] = text
		p.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (p *WebDocumentParser) fetch(ctx context.Context, file loader.DocumentFile) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.FilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching url: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		pageURL, err := url.Parse(file.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse url: %w", err)
		}
		article, err := readability.FromReader(resp.Body, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse html: %w", err)
		}
		var builder strings.Builder
		if err := article.RenderText(&builder); err != nil {
			return nil, fmt.Errorf("failed to render article text: %w", err)
		}
		return []byte(builder.String()), nil
	}

	if p.fallback != nil {
		return p.fallback.ParseText(ctx, file)
	}

	return io.ReadAll(resp.Body)
}
