package report

import (
	"strings"
	"testing"

	"mindscreen/internal/model"
)

func fallbackResults(dominant model.Category, score float64) *model.AssessmentResults {
	return &model.AssessmentResults{
		Scores:           map[string]*model.QuestionnaireScore{},
		CategoryScores:   map[model.Category]float64{dominant: score},
		DominantCategory: dominant,
	}
}

func TestFallbackSevenParagraphs(t *testing.T) {
	for _, cat := range model.CategoryPriority {
		got := Fallback(fallbackResults(cat, 0.5))
		ps := splitParagraphs(got)
		if len(ps) != ParagraphCount {
			t.Errorf("%s: %d paragraphs, want %d", cat, len(ps), ParagraphCount)
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	results := fallbackResults(model.CategoryAnxiety, 0.72)
	if Fallback(results) != Fallback(results) {
		t.Error("same input produced different reports")
	}
}

func TestFallbackEthicalNotice(t *testing.T) {
	got := Fallback(fallbackResults(model.CategoryDepression, 0.3))
	if !strings.Contains(got, "not a diagnosis") {
		t.Error("ethical notice missing")
	}
}

func TestFallbackHighBandMentionsCrisisSupport(t *testing.T) {
	got := Fallback(fallbackResults(model.CategoryTrauma, 0.9))
	if !strings.Contains(got, "crisis line") {
		t.Error("high band report does not point to crisis support")
	}

	mild := Fallback(fallbackResults(model.CategoryTrauma, 0.1))
	if strings.Contains(mild, "crisis line") {
		t.Error("low band report escalated to crisis support")
	}
}

func TestFallbackNamesDominantCategory(t *testing.T) {
	got := Fallback(fallbackResults(model.CategoryOCD, 0.5))
	if !strings.Contains(got, CategoryLabel(model.CategoryOCD)) {
		t.Errorf("dominant category label missing from report")
	}
}

func TestFallbackNoRawScoresOrInstrumentNames(t *testing.T) {
	for _, cat := range model.CategoryPriority {
		for _, score := range []float64{0.1, 0.5, 0.9} {
			got := Fallback(fallbackResults(cat, score))
			if rawScore.MatchString(got) {
				t.Errorf("%s/%v: raw score leaked into fallback text", cat, score)
			}
			for _, j := range jargonReplacements {
				if j.pattern.MatchString(got) {
					t.Errorf("%s/%v: clinical jargon %q leaked into fallback text", cat, score, j.pattern)
				}
			}
		}
	}
}

func TestFallbackMultipleElevatedAreas(t *testing.T) {
	results := &model.AssessmentResults{
		Scores: map[string]*model.QuestionnaireScore{},
		CategoryScores: map[model.Category]float64{
			model.CategoryDepression: 0.8,
			model.CategoryAnxiety:    0.6,
			model.CategoryTrauma:     0.1,
		},
		DominantCategory: model.CategoryDepression,
	}
	got := Fallback(results)
	if !strings.Contains(got, CategoryLabel(model.CategoryDepression)+" and "+CategoryLabel(model.CategoryAnxiety)) {
		t.Errorf("elevated areas not joined naturally: %q", got)
	}
}
