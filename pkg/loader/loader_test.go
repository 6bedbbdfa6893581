package loader

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubParser struct {
	text string
}

func (p *stubParser) ParseText(ctx context.Context, file DocumentFile) ([]byte, error) {
	return []byte(p.text), nil
}

func TestRegistryLookup(t *testing.T) {
	text := &stubParser{text: "plain"}
	word := &stubParser{text: "word"}
	r := NewDefaultRegistry(text, word)

	tests := []struct {
		name string
		path string
		want DocumentParser
	}{
		{name: "txt", path: "report.txt", want: text},
		{name: "markdown", path: "notes.md", want: text},
		{name: "docx", path: "analysis.docx", want: word},
		{name: "uppercase extension", path: "REPORT.TXT", want: text},
		{name: "nested path", path: "/tmp/docs/bearing.docx", want: word},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Lookup(tt.path)
			if err != nil {
				t.Fatalf("Lookup(%q) returned error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) resolved the wrong parser", tt.path)
			}
		})
	}
}

func TestRegistryLookupUnsupported(t *testing.T) {
	r := NewDefaultRegistry(&stubParser{}, &stubParser{})

	_, err := r.Lookup("slides.pptx")
	if err == nil {
		t.Fatal("expected error for unregistered extension")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error should wrap ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryRegisterCustom(t *testing.T) {
	r := NewRegistry()
	custom := &stubParser{text: "custom"}

	// Leading dot is optional and case is normalized.
	r.Register("LOG", custom)

	got, err := r.Lookup("vibration.log")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got != custom {
		t.Error("Lookup resolved the wrong parser")
	}
}

func TestRegistryExtensions(t *testing.T) {
	r := NewDefaultRegistry(&stubParser{}, &stubParser{})

	want := []string{".docx", ".markdown", ".md", ".txt"}
	if got := r.Extensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestFileFor(t *testing.T) {
	parser := &stubParser{text: "outer race spalling"}
	r := NewRegistry()
	r.Register(".txt", parser)

	file, err := r.FileFor("doc-42", "fault.txt")
	if err != nil {
		t.Fatalf("FileFor returned error: %v", err)
	}
	if file.ID != "doc-42" || file.FilePath != "fault.txt" {
		t.Errorf("unexpected file: %+v", file)
	}

	text, err := file.GetText(context.Background())
	if err != nil {
		t.Fatalf("GetText returned error: %v", err)
	}
	if string(text) != "outer race spalling" {
		t.Errorf("GetText = %q", text)
	}
}
