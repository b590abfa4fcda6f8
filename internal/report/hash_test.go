package report

import (
	"strings"
	"testing"

	"mindscreen/internal/model"
)

func resultsWith(normalized float64, items []int) *model.AssessmentResults {
	return &model.AssessmentResults{
		Scores: map[string]*model.QuestionnaireScore{
			"phq9": {
				QuestionnaireID: "phq9",
				Category:        model.CategoryDepression,
				Normalized:      normalized,
				SalientItems:    items,
			},
		},
		CategoryScores:   map[model.Category]float64{model.CategoryDepression: normalized},
		DominantCategory: model.CategoryDepression,
	}
}

func TestProfileHashStable(t *testing.T) {
	a := ProfileHash(resultsWith(0.3333, []int{1, 2}))
	b := ProfileHash(resultsWith(0.3333, []int{1, 2}))
	if a != b {
		t.Error("identical profiles produced different hashes")
	}
	if len(a) != 64 || strings.ToLower(a) != a {
		t.Errorf("hash %q is not lowercase sha256 hex", a)
	}
}

func TestProfileHashRoundsToFourDecimals(t *testing.T) {
	// Differences beyond the 4th decimal collapse to one key, so
	// submissions with different raw answers but the same rounded
	// profile share a cached report
	a := ProfileHash(resultsWith(0.333310001, []int{1, 2}))
	b := ProfileHash(resultsWith(0.333320001, []int{1, 2}))
	if a != b {
		t.Error("sub-rounding difference changed the hash")
	}

	c := ProfileHash(resultsWith(0.3334, []int{1, 2}))
	if a == c {
		t.Error("distinct rounded profiles collided")
	}
}

func TestProfileHashSensitiveToSalientItems(t *testing.T) {
	a := ProfileHash(resultsWith(0.5, []int{1, 2}))
	b := ProfileHash(resultsWith(0.5, []int{1, 3}))
	if a == b {
		t.Error("different salient items produced the same hash")
	}
}

func TestProfileHashSensitiveToScreenFlag(t *testing.T) {
	pos := resultsWith(0.5, nil)
	pos.Scores["phq9"].Components = map[string]float64{model.ComponentScreenFlag: 1}
	if ProfileHash(pos) == ProfileHash(resultsWith(0.5, nil)) {
		t.Error("screen flag did not change the hash")
	}
}
