package report

import (
	"strings"
	"testing"

	"mindscreen/internal/model"
)

func negativeScreenResults() *model.AssessmentResults {
	return &model.AssessmentResults{
		Scores: map[string]*model.QuestionnaireScore{
			"mdq": {
				QuestionnaireID: "mdq",
				Category:        model.CategoryDepression,
				Components:      map[string]float64{model.ComponentScreenFlag: 0},
			},
		},
		CategoryScores:   map[model.Category]float64{model.CategoryDepression: 0.4},
		DominantCategory: model.CategoryDepression,
	}
}

func paragraphs(text string) []string {
	return splitParagraphs(text)
}

func TestStripPromptEcho(t *testing.T) {
	text := "Write a supportive seven-paragraph summary for someone.\n\nMain theme: worry and tension\n\nHere is the actual report."
	got := StripPromptEcho(text)
	if got != "Here is the actual report." {
		t.Errorf("got %q", got)
	}

	clean := "No echo here.\n\nSecond paragraph."
	if StripPromptEcho(clean) != clean {
		t.Error("clean text was modified")
	}
}

func TestRemoveArtifactsHeaders(t *testing.T) {
	text := "## Introduction\n\nA real sentence.\n\nRecommendations:\n\nAnother real sentence."
	got := RemoveArtifacts(text)
	if strings.Contains(got, "Introduction") || strings.Contains(got, "Recommendations") {
		t.Errorf("headers survived: %q", got)
	}
	if !strings.Contains(got, "A real sentence.") {
		t.Errorf("content lost: %q", got)
	}
}

func TestRemoveArtifactsScores(t *testing.T) {
	cases := []string{
		"You scored 17 on this part.",
		"Your result was 12/27 overall.",
		"That is 12 out of 27.",
		"With a total score of 9 you are doing well.",
	}
	for _, text := range cases {
		got := RemoveArtifacts(text)
		for _, digit := range []string{"17", "12", "27", "9"} {
			if strings.Contains(got, digit) {
				t.Errorf("%q: raw score survived as %q", text, got)
			}
		}
	}
}

func TestRemoveArtifactsJargon(t *testing.T) {
	text := "Your PHQ-9 answers approach the clinical cutoff and may meet the criteria for concern under DSM-5 criteria."
	got := RemoveArtifacts(text)
	for _, banned := range []string{"PHQ-9", "clinical cutoff", "DSM", "meet the criteria for"} {
		if strings.Contains(got, banned) {
			t.Errorf("jargon %q survived: %q", banned, got)
		}
	}
}

func TestNormalizeParagraphsExactCountPassesThrough(t *testing.T) {
	parts := make([]string, ParagraphCount)
	for i := range parts {
		parts[i] = "Paragraph content here."
	}
	text := strings.Join(parts, "\n\n")
	if NormalizeParagraphs(text) != text {
		t.Error("correctly shaped text was reshaped")
	}
}

func TestNormalizeParagraphsReshapes(t *testing.T) {
	cases := map[string]string{
		"single blob":    "One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten.",
		"three chunks":   "One. Two.\n\nThree. Four. Five.\n\nSix.",
		"too many":       strings.Repeat("A sentence here.\n\n", 12),
		"almost empty":   "Only one sentence.",
		"whitespace mix": "First.\n\n\n\nSecond.   \n\nThird.",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			got := NormalizeParagraphs(text)
			ps := paragraphs(got)
			if len(ps) != ParagraphCount {
				t.Fatalf("got %d paragraphs, want %d", len(ps), ParagraphCount)
			}
			for i, p := range ps {
				if strings.TrimSpace(p) == "" {
					t.Errorf("paragraph %d is empty", i)
				}
			}
		})
	}
}

func TestRepairTruncationMidSentence(t *testing.T) {
	text := "A fine paragraph.\n\nThis one ends complete. But this trails off without"
	got := RepairTruncation(text)
	ps := paragraphs(got)
	last := ps[len(ps)-1]
	if strings.Contains(last, "trails off") {
		t.Errorf("dangling fragment survived: %q", last)
	}
	if !strings.HasSuffix(last, ".") {
		t.Errorf("last paragraph lacks terminal punctuation: %q", last)
	}
}

func TestRepairTruncationConnectiveEnding(t *testing.T) {
	text := "All good here.\n\nYou might want to talk to someone and."
	got := RepairTruncation(text)
	last := paragraphs(got)[len(paragraphs(got))-1]
	if last != safeClosing {
		t.Errorf("connective ending not replaced with safe closing: %q", last)
	}
}

func TestRepairTruncationLeavesCompleteTextAlone(t *testing.T) {
	text := "First paragraph.\n\nSecond one ends well."
	if RepairTruncation(text) != text {
		t.Error("complete text was modified")
	}
}

func TestEnforceScreenConsistencyRewritesClaim(t *testing.T) {
	text := "An opening paragraph.\n\nYour answers suggest a positive screen for mood episodes. Keep caring for yourself."
	got := EnforceScreenConsistency(text, negativeScreenResults())
	if strings.Contains(strings.ToLower(got), "positive screen") {
		t.Errorf("positive-screen claim survived: %q", got)
	}
	if !strings.Contains(got, "Keep caring for yourself.") {
		t.Errorf("innocent sentence removed: %q", got)
	}
	if !strings.Contains(got, screenCorrection) {
		t.Errorf("correction sentence missing: %q", got)
	}
}

func TestEnforceScreenConsistencyNoopWhenPositive(t *testing.T) {
	results := negativeScreenResults()
	results.Scores["mdq"].Components[model.ComponentScreenFlag] = 1
	text := "Your answers were consistent with a positive screen."
	if EnforceScreenConsistency(text, results) != text {
		t.Error("text rewritten despite a genuinely positive screen")
	}
}

func TestFullPipelineParagraphInvariant(t *testing.T) {
	inputs := []string{
		"Write a supportive seven-paragraph summary for someone.\n\nShort answer. It screened positive somewhere.",
		"## Summary\n\nYou scored 22 out of 27. That is a lot. More text follows here. And it keeps going and",
		"One paragraph only, complete and tidy.",
		strings.Repeat("Sentence goes here. ", 40),
	}
	for i, text := range inputs {
		got := Run(text, Pipeline(negativeScreenResults()))
		ps := paragraphs(got)
		if len(ps) != ParagraphCount {
			t.Errorf("input %d: %d paragraphs, want %d", i, len(ps), ParagraphCount)
		}
		for _, p := range ps {
			if strings.TrimSpace(p) == "" {
				t.Errorf("input %d: empty paragraph", i)
			}
		}
	}
}
