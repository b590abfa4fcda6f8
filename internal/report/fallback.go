package report

import (
	"strings"

	"mindscreen/internal/model"
	"mindscreen/internal/scoring"
)

// Fallback composes the deterministic seven-paragraph report from the
// result bundle alone. No external calls, no randomness; this is the
// path of last resort and must succeed for any valid result set.
func Fallback(results *model.AssessmentResults) string {
	dominant := results.DominantCategory
	band := scoring.ClassifyNormalized(results.CategoryScores[dominant])

	paragraphs := []string{
		introduction(),
		emotionalSummary(results, band),
		dominantFocus(dominant, band),
		psychoeducation(dominant),
		recommendations(dominant, band),
		encouragement(band),
		ethicalNotice(),
	}
	return strings.Join(paragraphs, "\n\n")
}

func introduction() string {
	return "Thank you for taking the time to answer these questions honestly. " +
		"Checking in with yourself like this takes courage, and it is a meaningful first step toward understanding how you have been feeling lately."
}

func emotionalSummary(results *model.AssessmentResults, band model.Band) string {
	var elevated []string
	for _, cat := range model.CategoryPriority {
		v, ok := results.CategoryScores[cat]
		if ok && scoring.ClassifyNormalized(v) != model.BandLow {
			elevated = append(elevated, CategoryLabel(cat))
		}
	}
	switch {
	case len(elevated) == 0:
		return "Overall, your answers suggest that things have been feeling fairly steady for you recently. " +
			"Everyone has harder days, and nothing in your responses points to an area that is weighing on you heavily right now."
	case len(elevated) == 1:
		return "Your answers suggest that " + elevated[0] + " has been taking up real space for you lately. " +
			"The rest of your responses point to areas that seem more settled at the moment."
	default:
		return "Your answers suggest that a few areas have been asking for your attention lately, especially " +
			joinNatural(elevated) + ". Feeling pulled in several directions at once can be tiring, and noticing it is already progress."
	}
}

func dominantFocus(cat model.Category, band model.Band) string {
	label := CategoryLabel(cat)
	switch band {
	case model.BandLow:
		return "The area that stood out most in your answers relates to " + label + ", though only gently. " +
			"Keeping an occasional eye on it is sensible, without needing to make it a worry."
	case model.BandMedium:
		return "The area that stood out most in your answers relates to " + label + ". " +
			"Experiences like these sit at a level where they often start to color daily life, which makes them worth taking seriously."
	default:
		return "The area that stood out most clearly in your answers relates to " + label + ". " +
			"Your responses suggest this has been intense recently, and experiences at this level deserve care and real support."
	}
}

var psychoeducationText = map[model.Category]string{
	model.CategoryDepression: "Periods of low mood can flatten enjoyment, drain energy, and make even small tasks feel heavy. " +
		"These experiences are far more common than most people realize, they are not a personal failing, and they respond well to support and small consistent changes.",
	model.CategoryAnxiety: "Worry and tension are the mind's alarm system working overtime. " +
		"When that alarm stays on, it can affect sleep, focus, and the body itself. Many people experience this, and there are well-understood ways to turn the volume down.",
	model.CategoryTrauma: "After distressing experiences, the mind sometimes keeps replaying, avoiding, or staying on guard long after the event has passed. " +
		"These are normal protective reactions that can outstay their welcome, and they soften with the right kind of support.",
	model.CategoryOCD: "Intrusive thoughts and the urge to repeat certain behaviors can feel like a loop that is hard to step out of. " +
		"Almost everyone has unwanted thoughts; it is the stickiness of the loop that varies, and that stickiness can be loosened.",
	model.CategoryPersonality: "Intense emotional swings and turbulence in close relationships can make life feel unpredictable from the inside. " +
		"These patterns usually have understandable roots, and people who work on them often see their relationships steady over time.",
	model.CategoryEating: "Concerns about food, eating, and body image can quietly take over more and more mental space. " +
		"They thrive in secrecy and shrink when spoken about, which is why sharing them with someone safe matters so much.",
	model.CategoryNeurodevelopment: "Difficulty with focus, restlessness, and organization is often a lifelong wiring difference rather than a lack of effort. " +
		"Understanding how your attention works makes it far easier to build routines that actually fit you.",
}

func psychoeducation(cat model.Category) string {
	if text, ok := psychoeducationText[cat]; ok {
		return text
	}
	return "Whatever you are carrying, it helps to remember that inner experiences shift, and that understanding them is the first step toward easing them."
}

// recommendations are ordered progressively: self-help first, then a
// trusted person, then professional support. Four to six items.
func recommendations(cat model.Category, band model.Band) string {
	items := []string{
		"Keep a simple daily routine with regular sleep, meals, and a little movement",
		"Set aside a few minutes each day to note how you are feeling, on paper or in your phone",
	}
	switch cat {
	case model.CategoryAnxiety:
		items = append(items, "Try a slow-breathing exercise when tension rises, lengthening each exhale")
	case model.CategoryTrauma:
		items = append(items, "Practice a grounding exercise, naming things you can see, hear, and touch, when memories intrude")
	case model.CategoryEating:
		items = append(items, "Try to eat at regular times with other people around when you can")
	case model.CategoryNeurodevelopment:
		items = append(items, "Break tasks into small steps and use reminders instead of relying on willpower")
	default:
		items = append(items, "Plan one small activity you used to enjoy, even if motivation arrives only afterwards")
	}
	items = append(items, "Share how you have been feeling with a trusted adult or friend rather than carrying it alone")
	if band == model.BandHigh {
		items = append(items,
			"Consider reaching out to a counselor, doctor, or mental health professional soon",
			"If things ever feel unsafe, contact a crisis line or emergency services right away")
	} else {
		items = append(items, "If these feelings persist or grow, talking with a counselor or doctor is a strong next step")
	}

	var b strings.Builder
	b.WriteString("A few things that tend to help, starting small: ")
	for i, item := range items {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(item + ".")
	}
	return b.String()
}

func encouragement(band model.Band) string {
	if band == model.BandHigh {
		return "However heavy things feel right now, this is a snapshot of a moment, not a verdict on your future. " +
			"People who feel the way you described do find their way through, especially once they let someone walk alongside them."
	}
	return "Be patient and kind with yourself as you go. " +
		"Small steps taken consistently matter far more than big ones taken once, and you have already taken one by reflecting honestly today."
}

func ethicalNotice() string {
	return "Please remember that this summary is based only on a brief self-report questionnaire. " +
		"It is not a diagnosis and cannot replace a conversation with a qualified professional, who can see the whole picture that no questionnaire can."
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
