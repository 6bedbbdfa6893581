package kg

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rotodiag/bearingkg/pkg/ai"
	"github.com/rotodiag/bearingkg/pkg/common"
)

var (
	formatInstructionsOnce sync.Once
	formatInstructions     string
)

// FormatInstructions returns the JSON schema describing the extraction
// output structure. It is rendered once and embedded verbatim into every
// extraction prompt.
func FormatInstructions() string {
	formatInstructionsOnce.Do(func() {
		schema := ai.GenerateSchema(&common.KnowledgeGraph{})
		raw, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			formatInstructions = "{}"
			return
		}
		formatInstructions = string(raw)
	})
	return formatInstructions
}

// BuildExtractionPrompt assembles the extraction instruction for one chunk:
// the task description, the output schema, the chunk text and, when a
// digest from the preceding chunk is available, a context block telling the
// model to extract only new or differing information.
func BuildExtractionPrompt(chunk Chunk, prevDigest string) string {
	prompt := fmt.Sprintf(ai.ExtractPrompt, FormatInstructions(), chunk.Text)
	if prevDigest != "" {
		prompt += fmt.Sprintf(ai.ExtractContextPrompt, prevDigest)
	}
	return prompt
}
