package kg

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rotodiag/bearingkg/pkg/ai"
)

type mockExtractionClient struct {
	prompts   []string
	responses []string
	errs      []error
}

func (m *mockExtractionClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	call := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if call < len(m.errs) && m.errs[call] != nil {
		return "", m.errs[call]
	}
	if call < len(m.responses) {
		return m.responses[call], nil
	}
	return `{"entries":[]}`, nil
}

func (m *mockExtractionClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	call := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if call < len(m.errs) && m.errs[call] != nil {
		return m.errs[call]
	}
	raw := `{"entries":[]}`
	if call < len(m.responses) {
		raw = m.responses[call]
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockExtractionClient) ResetMetrics()               {}
func (m *mockExtractionClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func factoryFor(client ai.ExtractionClient) ClientFactory {
	return func() (ai.ExtractionClient, error) {
		return client, nil
	}
}

func testChunks(texts ...string) []Chunk {
	chunks := make([]Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, Chunk{ID: "c", Index: i, Text: text})
	}
	return chunks
}

func TestExtractorRun_AllChunksSucceed(t *testing.T) {
	client := &mockExtractionClient{
		responses: []string{
			`{"entries":[{"fault_type":{"name":"spalling"}}]}`,
			`{"entries":[{"cause":{"name":"overload"}}]}`,
		},
	}
	extractor := NewExtractor(factoryFor(client))

	result, err := extractor.Run(context.Background(), testChunks("first", "second"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Graphs) != 2 {
		t.Fatalf("Run() returned %d graphs, want 2", len(result.Graphs))
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Run() skipped %d chunks, want 0", len(result.Skipped))
	}
}

func TestExtractorRun_SequentialDigestDependency(t *testing.T) {
	client := &mockExtractionClient{
		responses: []string{
			`{"entries":[{"fault_type":{"name":"alpha"}}]}`,
			`{"entries":[{"fault_type":{"name":"beta"}}]}`,
			`{"entries":[]}`,
		},
	}
	extractor := NewExtractor(factoryFor(client))

	_, err := extractor.Run(context.Background(), testChunks("one", "two", "three"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(client.prompts) != 3 {
		t.Fatalf("client received %d prompts, want 3", len(client.prompts))
	}

	if strings.Contains(client.prompts[0], "Prior Context") {
		t.Errorf("first prompt must not contain a context block")
	}
	if !strings.Contains(client.prompts[1], "fault type: alpha") {
		t.Errorf("second prompt should contain the digest of the first chunk")
	}
	if !strings.Contains(client.prompts[2], "fault type: beta") {
		t.Errorf("third prompt should contain the digest of the second chunk")
	}
	if strings.Contains(client.prompts[2], "alpha") {
		t.Errorf("third prompt must not contain the digest of the first chunk")
	}
}

func TestExtractorRun_FaultIsolation(t *testing.T) {
	client := &mockExtractionClient{
		responses: []string{
			`{"entries":[{"fault_type":{"name":"alpha"}}]}`,
			"",
			`{"entries":[{"fault_type":{"name":"gamma"}}]}`,
		},
		errs: []error{nil, errors.New("model unavailable"), nil},
	}
	extractor := NewExtractor(factoryFor(client))

	result, err := extractor.Run(context.Background(), testChunks("one", "two", "three"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Graphs) != 2 {
		t.Fatalf("Run() returned %d graphs, want 2", len(result.Graphs))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Index != 1 {
		t.Fatalf("Run() skipped = %+v, want exactly chunk index 1", result.Skipped)
	}

	// The failed chunk leaves the digest unchanged, so the third prompt
	// still carries the digest of the first chunk's result.
	if !strings.Contains(client.prompts[2], "fault type: alpha") {
		t.Errorf("prompt after a failed chunk should keep the previous digest")
	}
}

func TestExtractorRun_SetupFailure(t *testing.T) {
	calls := 0
	factory := func() (ai.ExtractionClient, error) {
		calls++
		return nil, errors.New("missing API key")
	}
	extractor := NewExtractor(factory)

	result, err := extractor.Run(context.Background(), testChunks("one", "two"))
	if err == nil {
		t.Fatalf("Run() expected setup error")
	}
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("Run() error = %T, want *SetupError", err)
	}
	if len(result.Graphs) != 0 {
		t.Errorf("Run() returned %d graphs after setup failure, want 0", len(result.Graphs))
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
}

func TestExtractorRun_UnparseableResponseYieldsEmptyGraph(t *testing.T) {
	client := &mockExtractionClient{
		responses: []string{"no structured data here"},
	}
	extractor := NewExtractor(factoryFor(client))

	result, err := extractor.Run(context.Background(), testChunks("only"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Graphs) != 1 {
		t.Fatalf("Run() returned %d graphs, want 1", len(result.Graphs))
	}
	if len(result.Graphs[0].Entries) != 0 || result.Graphs[0].Entries == nil {
		t.Errorf("unparseable response should yield an empty-entries graph")
	}
	if len(result.Skipped) != 0 {
		t.Errorf("unparseable response must not count as a failed chunk")
	}
}

func TestExtractorRun_StructuredOutput(t *testing.T) {
	client := &mockExtractionClient{
		responses: []string{
			`{"entries":[{"diagnosis_method":{"name":"envelope analysis"}}]}`,
		},
	}
	extractor := NewExtractor(factoryFor(client), WithStructuredOutput())

	result, err := extractor.Run(context.Background(), testChunks("only"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Graphs) != 1 || len(result.Graphs[0].Entries) != 1 {
		t.Fatalf("Run() structured mode returned unexpected result: %+v", result.Graphs)
	}
	if result.Graphs[0].Entries[0].DiagnosisMethod.Name != "envelope analysis" {
		t.Errorf("structured mode did not unmarshal the response")
	}
}
