package scoring

import (
	"fmt"

	"mindscreen/internal/model"
)

// ErrScoreOutOfRange reports a score no threshold covers. Thresholds are
// required to partition the instrument's full score domain, so this is
// an internal invariant violation, not input validation.
type ScoreOutOfRangeError struct {
	Score float64
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %v not covered by any threshold", e.Score)
}

// Interpret finds the unique inclusive range containing score
func Interpret(score float64, thresholds []model.Threshold) (model.InterpretationResult, error) {
	for _, t := range thresholds {
		if score >= t.Min && score <= t.Max {
			return model.InterpretationResult{Label: t.Label, Severity: t.Severity, Meaning: t.Meaning}, nil
		}
	}
	return model.InterpretationResult{}, &ScoreOutOfRangeError{Score: score}
}

// ClassifyNormalized places a normalized score into the three-band
// classifier used for cross-category comparison. Raw thresholds are only
// valid within one instrument; different instruments use different
// scales, so comparisons across categories go through this instead.
func ClassifyNormalized(n float64) model.Band {
	switch {
	case n < 0.34:
		return model.BandLow
	case n < 0.67:
		return model.BandMedium
	default:
		return model.BandHigh
	}
}

// DominantCategory picks the category with the highest normalized score.
// Ties break by the fixed CategoryPriority order so identical inputs
// always produce identical results.
func DominantCategory(categoryScores map[model.Category]float64) model.Category {
	best := model.Category("")
	bestScore := -1.0
	for _, cat := range model.CategoryPriority {
		v, ok := categoryScores[cat]
		if !ok {
			continue
		}
		if v > bestScore {
			best = cat
			bestScore = v
		}
	}
	return best
}

// BuildResults assembles the multi-instrument bundle for one submission.
// Per category, the highest normalized instrument score wins.
func BuildResults(scores map[string]*model.QuestionnaireScore) *model.AssessmentResults {
	categories := make(map[model.Category]float64)
	for _, s := range scores {
		if v, ok := categories[s.Category]; !ok || s.Normalized > v {
			categories[s.Category] = s.Normalized
		}
	}
	return &model.AssessmentResults{
		Scores:           scores,
		CategoryScores:   categories,
		DominantCategory: DominantCategory(categories),
	}
}
