package ai

import "testing"

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type fault struct {
		Name     string `json:"name"`
		Severity string `json:"severity,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  fault
	}{
		{
			name:  "valid json object",
			input: `{"name":"spalling"}`,
			want:  fault{Name: "spalling"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{name: 'spalling'}`,
			want:  fault{Name: "spalling"},
		},
		{
			name:  "trailing comma",
			input: `{"name":"spalling",}`,
			want:  fault{Name: "spalling"},
		},
		{
			name:  "missing endbracket",
			input: `{"name":"spalling`,
			want:  fault{Name: "spalling"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{name: 'spalling'}"`,
			want:  fault{Name: "spalling"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"name\": \"spalling\"\n}\n",
			want:  fault{Name: "spalling"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got fault
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Name != tc.want.Name || got.Severity != tc.want.Severity {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type fault struct {
		Name string `json:"name"`
	}

	input := `[{name:'wear'},{name:'smearing',}]`
	var got []fault
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "wear" || got[1].Name != "smearing" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want wear and smearing", got)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type fault struct {
		Name string `json:"name"`
	}

	var got fault
	if err := UnmarshalFlexible("hello", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestGenerateSchema(t *testing.T) {
	type record struct {
		Name  string   `json:"name" jsonschema_description:"Record name"`
		Tags  []string `json:"tags,omitempty"`
		Count int      `json:"count"`
	}

	schema := GenerateSchema(&record{})
	if schema == nil {
		t.Fatalf("GenerateSchema() returned nil")
	}
}
