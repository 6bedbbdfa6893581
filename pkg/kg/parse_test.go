package kg

import "testing"

func TestParseKnowledgeGraph(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantEntries int
	}{
		{
			name:        "direct json",
			raw:         `{"entries":[]}`,
			wantEntries: 0,
		},
		{
			name:        "direct json with entry",
			raw:         `{"entries":[{"fault_type":{"name":"spalling"}}]}`,
			wantEntries: 1,
		},
		{
			name:        "json embedded in prose",
			raw:         `Here is the result: {"entries":[]} Thanks.`,
			wantEntries: 0,
		},
		{
			name: "embedded json with entry",
			raw: "Sure, here is the extracted knowledge graph:\n" +
				`{"entries":[{"cause":{"name":"poor lubrication"}}]}` +
				"\nLet me know if you need anything else.",
			wantEntries: 1,
		},
		{
			name:        "malformed but repairable json",
			raw:         `{entries: [{fault_type: {name: 'wear'}}]}`,
			wantEntries: 1,
		},
		{
			name:        "entirely unparseable",
			raw:         "I could not find any bearing fault information.",
			wantEntries: 0,
		},
		{
			name:        "empty response",
			raw:         "",
			wantEntries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKnowledgeGraph(tt.raw)
			if got.Entries == nil {
				t.Fatalf("ParseKnowledgeGraph() returned nil entries")
			}
			if len(got.Entries) != tt.wantEntries {
				t.Errorf("ParseKnowledgeGraph() returned %d entries, want %d", len(got.Entries), tt.wantEntries)
			}
		})
	}
}

func TestParseKnowledgeGraph_EntryContent(t *testing.T) {
	raw := `The text mentions one fault. {"entries":[{"fault_type":{"name":"fatigue spalling","severity":"severe"}}]} Done.`

	got := ParseKnowledgeGraph(raw)
	if len(got.Entries) != 1 {
		t.Fatalf("ParseKnowledgeGraph() returned %d entries, want 1", len(got.Entries))
	}
	ft := got.Entries[0].FaultType
	if ft == nil {
		t.Fatalf("entry has no fault type")
	}
	if ft.Name != "fatigue spalling" {
		t.Errorf("fault type name = %q, want %q", ft.Name, "fatigue spalling")
	}
	if ft.Severity != "severe" {
		t.Errorf("fault type severity = %q, want %q", ft.Severity, "severe")
	}
}
