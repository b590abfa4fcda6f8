package model

// Category identifies a screened domain
type Category string

const (
	CategoryDepression       Category = "depression"
	CategoryAnxiety          Category = "anxiety"
	CategoryTrauma           Category = "trauma"
	CategoryOCD              Category = "ocd"
	CategoryPersonality      Category = "personality"
	CategoryEating           Category = "eating"
	CategoryNeurodevelopment Category = "neurodevelopment"
)

// CategoryPriority is the fixed tie-break order for dominant-category
// selection. Results must be reproducible for identical inputs, so the
// ordering is an explicit constant rather than map iteration order.
var CategoryPriority = []Category{
	CategoryDepression,
	CategoryAnxiety,
	CategoryTrauma,
	CategoryOCD,
	CategoryPersonality,
	CategoryEating,
	CategoryNeurodevelopment,
}

// ScoringMethod selects how an answer vector reduces to a score
type ScoringMethod string

const (
	MethodSum         ScoringMethod = "SUM"          // Plain sum of item values
	MethodBinaryKeyed ScoringMethod = "BINARY_KEYED" // Yes/no items, criterion flags
	MethodClusterDSM  ScoringMethod = "CLUSTER_DSM"  // Sum + per-cluster symptom counting
	MethodComposite   ScoringMethod = "COMPOSITE"    // Two sub-scales combined
)

// Severity is a named band tier
type Severity string

const (
	SeverityMinimal          Severity = "minimal"
	SeverityMild             Severity = "mild"
	SeverityModerate         Severity = "moderate"
	SeverityModeratelySevere Severity = "moderately_severe"
	SeveritySevere           Severity = "severe"
)

// Band is the normalized cross-category tier (raw thresholds are only
// comparable within one instrument)
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Scale bounds every item of an instrument unless the item carries its own ceiling
type Scale struct {
	Min     int      `json:"min"`
	Max     int      `json:"max"`
	Anchors []string `json:"anchors,omitempty"` // Labels for each scale point
}

// Item is one questionnaire prompt
type Item struct {
	Prompt  string   `json:"prompt"`
	Ceiling int      `json:"ceiling,omitempty"` // Per-item max when below scale max (0 = use scale)
	Labels  []string `json:"labels,omitempty"`
}

// Threshold maps an inclusive raw-score range to an interpretation
type Threshold struct {
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Meaning  string   `json:"meaning"` // Clinical-style explanation shown to the user
}

// InterpretationResult is the resolved band for a score
type InterpretationResult struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Meaning  string   `json:"meaning"`
}

// Cluster is a DSM-style symptom cluster over a contiguous item range.
// The criterion is met when Required items in [Start, End) are endorsed.
type Cluster struct {
	Name     string `json:"name"`
	Start    int    `json:"start"` // inclusive
	End      int    `json:"end"`   // exclusive
	Required int    `json:"required"`
}

// ScreenRule is the structured positive-screen criterion for binary-keyed
// instruments: yes-count over the leading symptom items plus optional
// co-occurrence and impairment gates. An item index of -1 disables that
// gate.
type ScreenRule struct {
	SymptomItems     int `json:"symptomItems"` // first N items counted as yes/no
	YesCutoff        int `json:"yesCutoff"`
	CoOccurrenceItem int `json:"coOccurrenceItem"`
	ImpairmentItem   int `json:"impairmentItem"`
	ImpairmentCutoff int `json:"impairmentCutoff"`
}

// QuestionnaireDefinition is an immutable catalog entry. Thresholds must
// partition [0, MaxScore()] with no gaps and no overlaps; the registry
// validates this at startup because a hole is a configuration defect,
// not a runtime condition.
type QuestionnaireDefinition struct {
	ID       string        `json:"id"`
	Version  string        `json:"version"`
	Name     string        `json:"name"`
	Category Category      `json:"category"`
	Items    []Item        `json:"items"`
	Scale    Scale         `json:"scale"`
	Method   ScoringMethod `json:"method"`

	Thresholds []Threshold `json:"thresholds"`

	// Method-specific structure, so the scoring engine stays
	// instrument-agnostic. RiskItems marks item indices whose endorsement
	// raises the urgent-support flag (sum method); Screen carries the
	// binary-keyed positive-screen criterion; Clusters carries the
	// DSM-cluster layout.
	RiskItems []int       `json:"riskItems,omitempty"`
	Screen    *ScreenRule `json:"screen,omitempty"`
	Clusters  []Cluster   `json:"clusters,omitempty"`
}

// ItemMax returns the effective ceiling for the item at index i
func (d *QuestionnaireDefinition) ItemMax(i int) int {
	if d.Items[i].Ceiling > 0 {
		return d.Items[i].Ceiling
	}
	return d.Scale.Max
}

// MaxScore is the highest total the instrument can produce
func (d *QuestionnaireDefinition) MaxScore() int {
	total := 0
	for i := range d.Items {
		total += d.ItemMax(i)
	}
	return total
}
