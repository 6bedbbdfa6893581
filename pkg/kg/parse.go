package kg

import (
	"encoding/json"
	"strings"

	"github.com/rotodiag/bearingkg/pkg/ai"
	"github.com/rotodiag/bearingkg/pkg/common"
)

// ParseKnowledgeGraph converts a raw model response into a knowledge graph.
// The response may be the expected JSON directly, or the JSON embedded in
// surrounding prose, in which case the outermost brace pair is located and
// parsed (with repair of slightly malformed JSON). An entirely unparseable
// response yields an empty-entries graph rather than an error.
func ParseKnowledgeGraph(raw string) common.KnowledgeGraph {
	raw = strings.TrimSpace(raw)

	var graph common.KnowledgeGraph
	if err := json.Unmarshal([]byte(raw), &graph); err == nil {
		return normalized(graph)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		span := raw[start : end+1]
		graph = common.KnowledgeGraph{}
		if err := ai.UnmarshalFlexible(span, &graph); err == nil {
			return normalized(graph)
		}
	}

	return common.Empty()
}

func normalized(graph common.KnowledgeGraph) common.KnowledgeGraph {
	if graph.Entries == nil {
		graph.Entries = []common.KnowledgeGraphEntry{}
	}
	return graph
}
