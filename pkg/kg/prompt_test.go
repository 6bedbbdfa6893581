package kg

import (
	"strings"
	"testing"
)

func TestFormatInstructions(t *testing.T) {
	first := FormatInstructions()
	if first == "" || first == "{}" {
		t.Fatalf("FormatInstructions() returned no usable schema")
	}
	if !strings.Contains(first, "entries") {
		t.Errorf("schema should describe the entries field")
	}
	if !strings.Contains(first, "fault_type") {
		t.Errorf("schema should describe the fault_type field")
	}

	if second := FormatInstructions(); second != first {
		t.Errorf("FormatInstructions() is not stable across calls")
	}
}

func TestBuildExtractionPrompt(t *testing.T) {
	chunk := Chunk{ID: "abc", Index: 0, Text: "Spalling on the outer race."}

	prompt := BuildExtractionPrompt(chunk, "")
	if !strings.Contains(prompt, chunk.Text) {
		t.Errorf("prompt should contain the chunk text")
	}
	if !strings.Contains(prompt, FormatInstructions()) {
		t.Errorf("prompt should embed the output schema")
	}
	if strings.Contains(prompt, "Prior Context") {
		t.Errorf("prompt without digest must not contain a context block")
	}
}

func TestBuildExtractionPrompt_WithDigest(t *testing.T) {
	chunk := Chunk{ID: "abc", Index: 1, Text: "Wear particles in the lubricant."}
	digest := "fault type: spalling; cause: overload"

	prompt := BuildExtractionPrompt(chunk, digest)
	if !strings.Contains(prompt, digest) {
		t.Errorf("prompt should contain the previous digest")
	}
	if !strings.Contains(prompt, "Prior Context") {
		t.Errorf("prompt with digest should contain the context block")
	}
	if !strings.Contains(prompt, chunk.Text) {
		t.Errorf("prompt should still contain the chunk text")
	}
}
