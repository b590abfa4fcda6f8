package model

import "time"

// ReportSource tags where report text came from
type ReportSource string

const (
	SourceLLM      ReportSource = "llm"
	SourceFallback ReportSource = "fallback"
)

// CacheEntry is one cached report keyed by profile hash. Overwritten in
// place on regeneration; never versioned. Err keeps the last generation
// failure for diagnostics even when the entry itself is a fallback hit.
type CacheEntry struct {
	Text      string       `json:"text" bson:"text"`
	Source    ReportSource `json:"source" bson:"source"`
	ExpiresAt time.Time    `json:"expiresAt" bson:"expiresAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
	Err       string       `json:"error,omitempty" bson:"error,omitempty"`
}

// Expired reports whether the entry is past its TTL at time now
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// ReportResult is what the adaptive generator hands back to the HTTP
// layer. The caller always receives text and a source tag; Err is
// populated outside production only.
type ReportResult struct {
	Text   string       `json:"text"`
	Source ReportSource `json:"source"`
	Cached bool         `json:"cached"`
	Err    string       `json:"error,omitempty"`
}

// Submission is a raw answer set as persisted, one row per request
type Submission struct {
	ID          string               `json:"id" bson:"_id,omitempty"`
	Answers     map[string][]float64 `json:"answers" bson:"answers"`
	SubmittedAt time.Time            `json:"submittedAt" bson:"submittedAt"`
}
