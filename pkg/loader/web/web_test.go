package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rotodiag/bearingkg/pkg/loader"
)

func TestParseTextPlain(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Inner race wear detected at 1800 rpm."))
	}))
	defer srv.Close()

	parser := NewWebDocumentParser()
	file := loader.DocumentFile{ID: "doc-1", FilePath: srv.URL, Parser: parser}

	got, err := parser.ParseText(context.Background(), file)
	if err != nil {
		t.Fatalf("ParseText returned error: %v", err)
	}
	if string(got) != "Inner race wear detected at 1800 rpm." {
		t.Errorf("unexpected text: %q", got)
	}

	// Second call must be served from cache.
	if _, err := parser.ParseText(context.Background(), file); err != nil {
		t.Fatalf("cached ParseText returned error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", hits.Load())
	}
}

func TestParseTextBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	parser := NewWebDocumentParser()
	file := loader.DocumentFile{ID: "doc-2", FilePath: srv.URL, Parser: parser}

	if _, err := parser.ParseText(context.Background(), file); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestParseTextInvalidURL(t *testing.T) {
	parser := NewWebDocumentParser()
	file := loader.DocumentFile{ID: "doc-3", FilePath: "://bad-url", Parser: parser}

	if _, err := parser.ParseText(context.Background(), file); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
