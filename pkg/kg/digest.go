package kg

import (
	"strings"
	"unicode/utf8"

	"github.com/rotodiag/bearingkg/pkg/common"
)

const (
	maxDigestLen      = 500
	digestTruncateLen = 497
	digestEllipsis    = "..."
)

// EmptyDigest is the sentinel digest for a result without any facts.
const EmptyDigest = "no information"

// SummarizeKeyInfo reduces one extraction result into a bounded digest of
// the named facts it contains, for use as context in the next chunk's
// extraction. Entry order is preserved; within an entry the categories
// appear in the fixed order fault type, cause, signal feature, frequency,
// diagnosis method, influencing factor. Digests longer than 500 characters
// are cut at 497 and terminated with an ellipsis marker; a digest of
// exactly 500 characters passes through untouched.
func SummarizeKeyInfo(graph common.KnowledgeGraph) string {
	var parts []string
	for _, entry := range graph.Entries {
		if entry.FaultType != nil {
			parts = append(parts, "fault type: "+entry.FaultType.Name)
		}
		if entry.Cause != nil {
			parts = append(parts, "cause: "+entry.Cause.Name)
		}
		if entry.SignalFeature != nil {
			parts = append(parts, "signal feature: "+entry.SignalFeature.Name)
		}
		if entry.Frequency != nil {
			parts = append(parts, "frequency: "+entry.Frequency.Name)
		}
		if entry.DiagnosisMethod != nil {
			parts = append(parts, "diagnosis method: "+entry.DiagnosisMethod.Name)
		}
		if entry.InfluencingFactor != nil {
			parts = append(parts, "influencing factor: "+entry.InfluencingFactor.Name)
		}
	}

	if len(parts) == 0 {
		return EmptyDigest
	}

	summary := strings.Join(parts, "; ")
	if utf8.RuneCountInString(summary) > maxDigestLen {
		runes := []rune(summary)
		summary = string(runes[:digestTruncateLen]) + digestEllipsis
	}
	return summary
}
