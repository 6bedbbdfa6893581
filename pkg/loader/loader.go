package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is returned when no parser is registered for a
// document's file extension. It is an input error: it surfaces before any
// chunking or extraction is attempted.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentFile represents a document that can be parsed into plain text
// for the chunking pipeline. The actual content is retrieved via the
// associated DocumentParser.
type DocumentFile struct {
	ID       string
	FilePath string
	Parser   DocumentParser
}

// GetText retrieves the plain text content of the document using its parser.
func (f *DocumentFile) GetText(ctx context.Context) ([]byte, error) {
	return f.Parser.ParseText(ctx, *f)
}

// DocumentParser defines the interface for extracting plain text from one
// document format. Implementations may read from disk, unpack container
// formats or fetch remote content.
type DocumentParser interface {
	ParseText(ctx context.Context, file DocumentFile) ([]byte, error)
}

// CacheKey generates a unique cache key for a DocumentFile based on its ID
// and path.
func CacheKey(file DocumentFile) string {
	return file.ID + ":" + file.FilePath
}

// Registry maps lowercase file extensions to document parsers. Supporting
// a new format is a pure registration act; no parser is special-cased.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]DocumentParser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]DocumentParser),
	}
}

// NewDefaultRegistry creates a registry with the built-in formats: plain
// text and Markdown read verbatim, Word documents unpacked via their
// document XML.
func NewDefaultRegistry(text DocumentParser, word DocumentParser) *Registry {
	r := NewRegistry()
	r.Register(".txt", text)
	r.Register(".md", text)
	r.Register(".markdown", text)
	r.Register(".docx", word)
	return r
}

// Register adds a parser for the given extension (leading dot optional,
// matched case-insensitively). An existing registration is replaced.
func (r *Registry) Register(ext string, parser DocumentParser) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[ext] = parser
}

// Lookup resolves the parser for a file path by its extension. It returns
// an error wrapping ErrUnsupportedFormat when no parser is registered.
func (r *Registry) Lookup(path string) (DocumentParser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	parser, ok := r.parsers[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	return parser, nil
}

// Extensions returns the sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FileFor resolves the parser for path and returns a DocumentFile bound
// to it.
func (r *Registry) FileFor(id string, path string) (DocumentFile, error) {
	parser, err := r.Lookup(path)
	if err != nil {
		return DocumentFile{}, err
	}
	return DocumentFile{
		ID:       id,
		FilePath: path,
		Parser:   parser,
	}, nil
}
