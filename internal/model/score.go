package model

// Component keys populated by the specialized scoring methods
const (
	ComponentYesCount      = "yesCount"
	ComponentCoOccurrence  = "coOccurrence"
	ComponentImpairment    = "impairment"
	ComponentScreenFlag    = "screenPositive"
	ComponentUrgentSupport = "urgentSupportRecommended"
	ComponentObsessions    = "obsessions"
	ComponentCompulsions   = "compulsions"
)

// QuestionnaireScore is the scoring engine's output. Immutable once
// produced; owned by the caller.
type QuestionnaireScore struct {
	QuestionnaireID string               `json:"questionnaireId" bson:"questionnaireId"`
	Version         string               `json:"version" bson:"version"`
	Category        Category             `json:"category" bson:"category"`
	Total           float64              `json:"totalScore" bson:"totalScore"`
	MaxScore        float64              `json:"maxScore" bson:"maxScore"`
	Normalized      float64              `json:"normalizedScore" bson:"normalizedScore"` // Always in [0,1]
	Components      map[string]float64   `json:"components,omitempty" bson:"components,omitempty"`
	Interpretation  InterpretationResult `json:"interpretation" bson:"interpretation"`

	// SalientItems are the indices of the highest non-zero answers,
	// highest first. Feeds the report prompt, never the thresholds.
	SalientItems []int `json:"salientItems,omitempty" bson:"salientItems,omitempty"`
}

// ScreenPositive reports whether a binary-keyed instrument's structured
// criteria were all met. False for instruments without the flag.
func (s *QuestionnaireScore) ScreenPositive() bool {
	return s.Components != nil && s.Components[ComponentScreenFlag] > 0
}

// UrgentSupport reports the item-level risk flag (PHQ-9 item 9).
func (s *QuestionnaireScore) UrgentSupport() bool {
	return s.Components != nil && s.Components[ComponentUrgentSupport] > 0
}

// AssessmentResults bundles the per-instrument scores of one submission.
// Constructed once, read to build a report, never persisted as a mutable
// entity.
type AssessmentResults struct {
	Scores           map[string]*QuestionnaireScore `json:"scores"`
	CategoryScores   map[Category]float64           `json:"categoryScores"` // Normalized, per screened domain
	DominantCategory Category                       `json:"dominantCategory"`
}
