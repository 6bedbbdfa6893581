package util

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "clean text unchanged",
			input: "Outer race spalling. 外圈剥落。",
			want:  "Outer race spalling. 外圈剥落。",
		},
		{
			name:  "nul bytes removed",
			input: "bearing\x00fault",
			want:  "bearingfault",
		},
		{
			name:  "invalid utf8 removed",
			input: "vibration\xff\xfesignal",
			want:  "vibrationsignal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
