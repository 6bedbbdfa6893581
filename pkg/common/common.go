package common

// Severity describes how far a bearing fault has progressed.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// FaultType represents a bearing fault mode such as spalling, wear or
// smearing. Relation fields reference other records by name; no referential
// integrity is enforced across entries.
type FaultType struct {
	Name                string   `json:"name" jsonschema_description:"Name of the fault type, e.g. 'fatigue spalling', 'wear', 'smearing'"`
	Severity            Severity `json:"severity,omitempty" jsonschema:"enum=mild,enum=moderate,enum=severe" jsonschema_description:"Severity of the fault, one of mild, moderate or severe"`
	CausedBy            []string `json:"caused_by,omitempty" jsonschema_description:"Names of fault causes that produce this fault (FaultCause.name)"`
	ManifestsAs         []string `json:"manifests_as,omitempty" jsonschema_description:"Signal features this fault manifests as (SignalFeature.name)"`
	HasFeatureFrequency []string `json:"has_feature_frequency,omitempty" jsonschema_description:"Characteristic frequencies associated with this fault (CharacteristicFrequency.name)"`
	DetectedBy          []string `json:"detected_by,omitempty" jsonschema_description:"Diagnosis methods able to detect this fault (DiagnosisMethod.name)"`
}

// FaultCause represents a root cause such as poor lubrication, overload or
// incorrect mounting.
type FaultCause struct {
	Name              string   `json:"name" jsonschema_description:"Name of the cause, e.g. 'poor lubrication', 'overload', 'incorrect mounting'"`
	Produces          []string `json:"produces,omitempty" jsonschema_description:"Fault types this cause produces (FaultType.name)"`
	EffectDescription string   `json:"effect_description,omitempty" jsonschema_description:"Concrete effect on vibration behaviour or diagnosis"`
}

// SignalFeature represents how a fault shows up in the measured signal,
// e.g. periodic impacts, sidebands or envelope modulation.
type SignalFeature struct {
	Name             string   `json:"name" jsonschema_description:"Name of the signal feature, e.g. 'periodic impacts', 'sidebands', 'envelope modulation'"`
	FrequencyBand    string   `json:"frequency_band,omitempty" jsonschema_description:"Frequency band the feature lives in, e.g. 'high frequency (10-60 kHz)'"`
	AssociatedFaults []string `json:"associated_faults,omitempty" jsonschema_description:"Fault types associated with this feature (FaultType.name)"`
	InfluencedBy     []string `json:"influenced_by,omitempty" jsonschema_description:"Influencing factors that disturb this feature (InfluencingFactor.name)"`
}

// CharacteristicFrequency represents a defect frequency such as the outer
// race passing frequency, together with its formula and parameters.
type CharacteristicFrequency struct {
	Name            string   `json:"name" jsonschema_description:"Name of the frequency, e.g. 'outer race passing frequency'"`
	Formula         string   `json:"formula,omitempty" jsonschema_description:"Formula, e.g. 'f_outer = (Z/2) * f0 * (1 - d/D * cos(a))'"`
	DependsOn       []string `json:"depends_on,omitempty" jsonschema_description:"Parameters the frequency depends on, e.g. shaft frequency f0, number of rollers Z"`
	AssociatedFault string   `json:"associated_fault,omitempty" jsonschema_description:"Fault type this frequency indicates (FaultType.name)"`
}

// DiagnosisMethod represents an analysis technique such as envelope
// analysis, wavelet analysis or resonance demodulation.
type DiagnosisMethod struct {
	Name          string   `json:"name" jsonschema_description:"Name of the method, e.g. 'envelope analysis', 'wavelet analysis'"`
	FrequencyBand string   `json:"frequency_band,omitempty" jsonschema_description:"Frequency band the method applies to"`
	Advantage     string   `json:"advantage,omitempty" jsonschema_description:"Strength of the method"`
	Limitation    string   `json:"limitation,omitempty" jsonschema_description:"Limitation of the method"`
	DetectsFaults []string `json:"detects_faults,omitempty" jsonschema_description:"Fault types the method can detect (FaultType.name)"`
	InfluencedBy  []string `json:"influenced_by,omitempty" jsonschema_description:"Factors that affect the method (InfluencingFactor.name)"`
}

// InfluencingFactor represents an external factor such as rotation speed,
// sensor placement or lubrication state.
type InfluencingFactor struct {
	Name              string   `json:"name" jsonschema_description:"Name of the factor, e.g. 'rotation speed', 'sensor placement'"`
	EffectDescription string   `json:"effect_description,omitempty" jsonschema_description:"Concrete effect on the signal or diagnosis"`
	Influences        []string `json:"influences,omitempty" jsonschema_description:"Names of entities this factor influences, e.g. diagnosis methods or signal features"`
}

// KnowledgeGraphEntry is one structured record extracted from a text chunk.
// At most one fact of each category is populated; unpopulated categories
// stay nil.
type KnowledgeGraphEntry struct {
	FaultType         *FaultType               `json:"fault_type,omitempty" jsonschema_description:"Bearing fault type found in the text, if any"`
	Cause             *FaultCause              `json:"cause,omitempty" jsonschema_description:"Fault cause found in the text, if any"`
	SignalFeature     *SignalFeature           `json:"signal_feature,omitempty" jsonschema_description:"Signal feature found in the text, if any"`
	Frequency         *CharacteristicFrequency `json:"frequency,omitempty" jsonschema_description:"Characteristic frequency found in the text, if any"`
	DiagnosisMethod   *DiagnosisMethod         `json:"diagnosis_method,omitempty" jsonschema_description:"Diagnosis method found in the text, if any"`
	InfluencingFactor *InfluencingFactor       `json:"influencing_factor,omitempty" jsonschema_description:"Influencing factor found in the text, if any"`
}

// IsEmpty reports whether no fact category is populated.
func (e KnowledgeGraphEntry) IsEmpty() bool {
	return e.FaultType == nil &&
		e.Cause == nil &&
		e.SignalFeature == nil &&
		e.Frequency == nil &&
		e.DiagnosisMethod == nil &&
		e.InfluencingFactor == nil
}

// KnowledgeGraph is the structured extraction result for a single text
// chunk. The same struct drives the JSON schema embedded into extraction
// prompts, so the json and jsonschema tags are the single source of truth
// for the wire shape.
type KnowledgeGraph struct {
	Entries []KnowledgeGraphEntry `json:"entries" jsonschema_description:"List of structured knowledge entries extracted from the text"`
}

// Empty returns a knowledge graph with a non-nil, zero-length entry list.
// Used when a model response cannot be parsed into the expected structure.
func Empty() KnowledgeGraph {
	return KnowledgeGraph{Entries: []KnowledgeGraphEntry{}}
}
