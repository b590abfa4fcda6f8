package report

import (
	"regexp"
	"strings"

	"mindscreen/internal/model"
)

// ParagraphCount is the fixed shape of every generated report
const ParagraphCount = 7

// Stage is one pure text transformation. Stages are order-sensitive and
// individually testable.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Pipeline returns the full post-processing chain for freshly generated
// model output.
func Pipeline(results *model.AssessmentResults) []Stage {
	return []Stage{
		{Name: "strip_prompt_echo", Apply: StripPromptEcho},
		{Name: "remove_artifacts", Apply: RemoveArtifacts},
		{Name: "normalize_paragraphs", Apply: NormalizeParagraphs},
		{Name: "repair_truncation", Apply: RepairTruncation},
		{Name: "screen_consistency", Apply: func(text string) string {
			return EnforceScreenConsistency(text, results)
		}},
	}
}

// RenormalizePipeline is the reduced chain applied to legacy cached text
// whose paragraph shape predates the current format.
func RenormalizePipeline() []Stage {
	return []Stage{
		{Name: "normalize_paragraphs", Apply: NormalizeParagraphs},
		{Name: "repair_truncation", Apply: RepairTruncation},
	}
}

// Run applies stages in order
func Run(text string, stages []Stage) string {
	for _, s := range stages {
		text = s.Apply(text)
	}
	return text
}

var promptEchoPrefixes = []string{
	"write a supportive",
	"you are a warm",
	"main theme:",
	"area summary:",
	"the seven paragraphs in order",
}

// StripPromptEcho drops leading paragraphs that echo the prompt back
func StripPromptEcho(text string) string {
	paragraphs := splitParagraphs(text)
	start := 0
	for start < len(paragraphs) {
		lower := strings.ToLower(paragraphs[start])
		echoed := false
		for _, prefix := range promptEchoPrefixes {
			if strings.HasPrefix(lower, prefix) {
				echoed = true
				break
			}
		}
		if !echoed {
			break
		}
		start++
	}
	return strings.Join(paragraphs[start:], "\n\n")
}

var (
	headerLine   = regexp.MustCompile(`(?m)^\s*(#{1,6}\s+.*|\*\*[^*]+\*\*:?\s*|(?i:introduction|summary|recommendations|encouragement|conclusion|closing|paragraph\s*\d+)\s*:?\s*)$`)
	rawScore     = regexp.MustCompile(`(?i)\b(?:a\s+)?(?:total\s+)?scored?\s+(?:of\s+)?\d+(?:\.\d+)?\b|\b\d+\s*(?:/|out of)\s*\d+\b`)
	numberedItem = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
)

// Clinical vocabulary the report must not echo, with neutral stand-ins
var jargonReplacements = []struct{ pattern *regexp.Regexp; replacement string }{
	{regexp.MustCompile(`(?i)\bPHQ-?9\b|\bGAD-?7\b|\bPCL-?5\b|\bY-?BOCS\b|\bMDQ\b|\bSCOFF\b|\bASRS\b`), "the questionnaire"},
	{regexp.MustCompile(`(?i)\bDSM(?:-5)?\s*(?:criteria)?\b`), "standard guidelines"},
	{regexp.MustCompile(`(?i)\bclinical\s+(?:cutoff|threshold)s?\b|\bcutoff\s+scores?\b`), "general reference points"},
	{regexp.MustCompile(`(?i)\bdiagnostic\s+criteria\b`), "what professionals look for"},
	{regexp.MustCompile(`(?i)\bmeets?\s+(?:the\s+)?criteria\s+for\b`), "shows experiences sometimes associated with"},
}

// RemoveArtifacts strips leaked section headers, raw scores, and
// disallowed clinical phrasing.
func RemoveArtifacts(text string) string {
	text = headerLine.ReplaceAllString(text, "")
	text = numberedItem.ReplaceAllString(text, "")
	text = rawScore.ReplaceAllString(text, "")
	for _, j := range jargonReplacements {
		text = j.pattern.ReplaceAllString(text, j.replacement)
	}
	// Collapse the doubled spaces the removals leave behind
	text = regexp.MustCompile(`[ \t]{2,}`).ReplaceAllString(text, " ")
	return text
}

var fillerSentences = []string{
	"Take whatever resonates from this and leave the rest.",
	"There is no deadline on feeling better, and no single right way to get there.",
	"Checking in with yourself from time to time is a habit worth keeping.",
	"Support looks different for everyone, and it is okay to try a few things before one fits.",
	"Being honest about how you feel, as you were here, is itself a strength.",
	"Whatever today looked like, tomorrow is allowed to look different.",
	"You deserve the same patience you would offer a good friend.",
}

// NormalizeParagraphs reshapes arbitrary model output into exactly
// ParagraphCount non-empty paragraphs. Already-correct output passes
// through untouched; anything else is regrouped sentence by sentence
// and padded with safe filler where the text runs short.
func NormalizeParagraphs(text string) string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == ParagraphCount {
		return strings.Join(paragraphs, "\n\n")
	}

	var sentences []string
	for _, p := range paragraphs {
		sentences = append(sentences, splitSentences(p)...)
	}
	if len(sentences) == 0 {
		sentences = append(sentences, fillerSentences[0])
	}

	out := make([]string, ParagraphCount)
	n := len(sentences)
	for i := 0; i < ParagraphCount; i++ {
		lo, hi := i*n/ParagraphCount, (i+1)*n/ParagraphCount
		if lo < hi {
			out[i] = strings.Join(sentences[lo:hi], " ")
		} else {
			out[i] = fillerSentences[i%len(fillerSentences)]
		}
	}
	return strings.Join(out, "\n\n")
}

const safeClosing = "Whatever comes next, you do not have to figure it out all at once, and support is there when you want it."

var trailingConnective = regexp.MustCompile(`(?i)\b(and|but|or|so|because|with|to|that|which|the|a|an)[\s,]*$`)

// RepairTruncation fixes a trailing paragraph that was cut off
// mid-sentence: the dangling fragment is trimmed back to the last
// complete sentence, and a safe closing sentence substitutes when
// nothing complete remains.
func RepairTruncation(text string) string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return text
	}
	last := strings.TrimSpace(paragraphs[len(paragraphs)-1])

	truncated := !strings.ContainsAny(lastRune(last), ".!?") || trailingConnective.MatchString(strings.TrimRight(last, ".!? "))
	if !truncated {
		return strings.Join(paragraphs, "\n\n")
	}

	cut := strings.LastIndexAny(last, ".!?")
	if cut >= 0 {
		last = strings.TrimSpace(last[:cut+1])
	} else {
		last = ""
	}
	// Drop a final sentence that itself ends on a connective
	if trailingConnective.MatchString(strings.TrimRight(last, ".!? ")) {
		last = ""
	}
	if last == "" {
		last = safeClosing
	} else {
		last += " " + safeClosing
	}
	paragraphs[len(paragraphs)-1] = last
	return strings.Join(paragraphs, "\n\n")
}

var positiveScreenClaim = regexp.MustCompile(`(?i)screen(?:ed)?\s+(?:was\s+|is\s+)?positive|positive\s+screen(?:ing)?(?:\s+result)?`)

const screenCorrection = "Your answers did not point toward a pattern of elevated-mood episodes, though only a professional conversation can say for sure."

// EnforceScreenConsistency rewrites any claim of a positive mood screen
// when the structured criterion flag from the mood-disorder screener
// says the screen was negative. Severity labels and model phrasing can
// drift apart from the criterion flags; the flag wins.
func EnforceScreenConsistency(text string, results *model.AssessmentResults) string {
	score, ok := results.Scores["mdq"]
	if !ok || score.ScreenPositive() {
		return text
	}
	paragraphs := splitParagraphs(text)
	for pi, p := range paragraphs {
		if !positiveScreenClaim.MatchString(p) {
			continue
		}
		sentences := splitSentences(p)
		kept := make([]string, 0, len(sentences))
		replaced := false
		for _, s := range sentences {
			if positiveScreenClaim.MatchString(s) {
				if !replaced {
					kept = append(kept, screenCorrection)
					replaced = true
				}
				continue
			}
			kept = append(kept, s)
		}
		paragraphs[pi] = strings.Join(kept, " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var sentenceEnd = regexp.MustCompile(`([.!?]+)\s+`)

func splitSentences(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, s := range strings.Split(marked, "\x00") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lastRune(s string) string {
	if s == "" {
		return ""
	}
	return s[len(s)-1:]
}
