package report

import (
	"fmt"
	"sort"
	"strings"

	"mindscreen/internal/model"
	"mindscreen/internal/scoring"
)

// SystemPrompt is the instruction sent with every completion request
const SystemPrompt = `You are a warm, careful writing assistant for a mental wellbeing screening service. You write supportive, plain-language summaries for people who just completed self-report questionnaires. You never diagnose, never mention questionnaire names, scores, cutoffs, or clinical criteria, and you always encourage professional support where appropriate. Write exactly seven paragraphs of flowing prose with no headings, lists, or markdown.`

// categoryLabels translates screened domains into the plain language
// used in prompts and reports. Raw diagnostic vocabulary stays out of
// the prompt so the model cannot echo it back.
var categoryLabels = map[model.Category]string{
	model.CategoryDepression:       "low mood and loss of enjoyment",
	model.CategoryAnxiety:          "worry and tension",
	model.CategoryTrauma:           "reactions to distressing experiences",
	model.CategoryOCD:              "intrusive thoughts and repeated behaviors",
	model.CategoryPersonality:      "intense emotions and relationship strain",
	model.CategoryEating:           "eating and body-image concerns",
	model.CategoryNeurodevelopment: "attention and focus",
}

// CategoryLabel returns the plain-language label for a category
func CategoryLabel(cat model.Category) string {
	if l, ok := categoryLabels[cat]; ok {
		return l
	}
	return string(cat)
}

// BuildPrompt renders the deterministic user prompt for a result set.
// It carries the dominant themes, a compact per-category band summary,
// and the most salient item indices per instrument; never raw scores or
// diagnostic thresholds.
func BuildPrompt(results *model.AssessmentResults) string {
	var b strings.Builder
	b.WriteString("Write a supportive seven-paragraph summary for someone whose answers touched on these areas.\n\n")

	b.WriteString("Main theme: " + CategoryLabel(results.DominantCategory) + "\n\n")

	cats := make([]string, 0, len(results.CategoryScores))
	for cat := range results.CategoryScores {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	b.WriteString("Area summary:\n")
	for _, cat := range cats {
		band := scoring.ClassifyNormalized(results.CategoryScores[model.Category(cat)])
		fmt.Fprintf(&b, "- %s: %s\n", CategoryLabel(model.Category(cat)), band)
	}

	ids := make([]string, 0, len(results.Scores))
	for id := range results.Scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	wrote := false
	for _, id := range ids {
		s := results.Scores[id]
		if len(s.SalientItems) == 0 {
			continue
		}
		if !wrote {
			b.WriteString("\nAreas the person emphasized most (topic indices per questionnaire):\n")
			wrote = true
		}
		items := make([]string, len(s.SalientItems))
		for i, idx := range s.SalientItems {
			items[i] = fmt.Sprintf("%d", idx+1)
		}
		fmt.Fprintf(&b, "- %s: topics %s\n", CategoryLabel(s.Category), strings.Join(items, ", "))
	}

	b.WriteString("\nThe seven paragraphs in order: a gentle introduction, how they seem to be feeling, the area that stands out most, what that experience is like for many people, four to six progressive suggestions starting with self-care and ending with professional support, encouragement, and a closing note that this is not a diagnosis.")
	return b.String()
}
