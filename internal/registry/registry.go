package registry

import (
	"fmt"
	"sort"

	"mindscreen/internal/model"
)

// Registry is the static questionnaire catalog. Definitions are
// immutable after New; callers must not mutate what Get returns.
type Registry struct {
	defs  map[string]*model.QuestionnaireDefinition
	order []string
}

// New builds the catalog and validates every threshold table. A table
// that does not partition [0, maxScore] is a configuration defect, so
// New panics rather than letting the gap surface mid-request.
func New() *Registry {
	r := &Registry{defs: make(map[string]*model.QuestionnaireDefinition)}
	for _, def := range catalog() {
		if err := validate(def); err != nil {
			panic(fmt.Sprintf("registry: %s: %v", def.ID, err))
		}
		r.defs[def.ID] = def
		r.order = append(r.order, def.ID)
	}
	return r
}

// Get returns the definition for id, or nil if unknown
func (r *Registry) Get(id string) *model.QuestionnaireDefinition {
	return r.defs[id]
}

// All returns every definition in catalog order
func (r *Registry) All() []*model.QuestionnaireDefinition {
	out := make([]*model.QuestionnaireDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// ByCategory returns the definitions screening a given domain
func (r *Registry) ByCategory(cat model.Category) []*model.QuestionnaireDefinition {
	var out []*model.QuestionnaireDefinition
	for _, id := range r.order {
		if r.defs[id].Category == cat {
			out = append(out, r.defs[id])
		}
	}
	return out
}

// validate checks that thresholds cover [0, maxScore] inclusively with
// no gaps and no overlaps.
func validate(def *model.QuestionnaireDefinition) error {
	if len(def.Items) == 0 {
		return fmt.Errorf("no items")
	}
	if def.Scale.Max <= def.Scale.Min {
		return fmt.Errorf("scale max %d not above min %d", def.Scale.Max, def.Scale.Min)
	}
	if len(def.Thresholds) == 0 {
		return fmt.Errorf("no thresholds")
	}

	ts := make([]model.Threshold, len(def.Thresholds))
	copy(ts, def.Thresholds)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Min < ts[j].Min })

	if ts[0].Min != 0 {
		return fmt.Errorf("thresholds start at %.0f, want 0", ts[0].Min)
	}
	for i, t := range ts {
		if t.Max < t.Min {
			return fmt.Errorf("threshold %q has max below min", t.Label)
		}
		if i > 0 && t.Min != ts[i-1].Max+1 {
			return fmt.Errorf("gap or overlap between %q and %q", ts[i-1].Label, t.Label)
		}
	}
	max := float64(def.MaxScore())
	if ts[len(ts)-1].Max != max {
		return fmt.Errorf("thresholds end at %.0f, want %.0f", ts[len(ts)-1].Max, max)
	}

	n := len(def.Items)
	for _, i := range def.RiskItems {
		if i < 0 || i >= n {
			return fmt.Errorf("risk item %d out of range", i)
		}
	}
	if s := def.Screen; s != nil {
		if s.SymptomItems < 1 || s.SymptomItems > n {
			return fmt.Errorf("screen symptom count %d out of range", s.SymptomItems)
		}
		if s.CoOccurrenceItem >= n || s.ImpairmentItem >= n {
			return fmt.Errorf("screen gate item out of range")
		}
	}
	for _, cl := range def.Clusters {
		if cl.Start < 0 || cl.End > n || cl.Start >= cl.End {
			return fmt.Errorf("cluster %q range [%d, %d) invalid", cl.Name, cl.Start, cl.End)
		}
	}
	return nil
}

func catalog() []*model.QuestionnaireDefinition {
	return []*model.QuestionnaireDefinition{
		phq9(), gad7(), pcl5(), ybocs(), mdq(), scoff(), asrs5(), msi(),
	}
}

func frequencyAnchors() []string {
	return []string{"Not at all", "Several days", "More than half the days", "Nearly every day"}
}

func phq9() *model.QuestionnaireDefinition {
	return &model.QuestionnaireDefinition{
		ID:       "phq9",
		Version:  "1",
		Name:     "Patient Health Questionnaire-9",
		Category: model.CategoryDepression,
		Scale:    model.Scale{Min: 0, Max: 3, Anchors: frequencyAnchors()},
		Method:   model.MethodSum,
		Items: []model.Item{
			{Prompt: "Little interest or pleasure in doing things"},
			{Prompt: "Feeling down, depressed, or hopeless"},
			{Prompt: "Trouble falling or staying asleep, or sleeping too much"},
			{Prompt: "Feeling tired or having little energy"},
			{Prompt: "Poor appetite or overeating"},
			{Prompt: "Feeling bad about yourself or that you are a failure"},
			{Prompt: "Trouble concentrating on things"},
			{Prompt: "Moving or speaking noticeably slowly, or being fidgety and restless"},
			{Prompt: "Thoughts that you would be better off dead or of hurting yourself"},
		},
		RiskItems: []int{8}, // item 9: urgent-support flag on any endorsement
		Thresholds: []model.Threshold{
			{Min: 0, Max: 4, Label: "Minimal depression", Severity: model.SeverityMinimal,
				Meaning: "Symptoms in this range are common and usually pass on their own."},
			{Min: 5, Max: 9, Label: "Mild depression", Severity: model.SeverityMild,
				Meaning: "Some low-mood symptoms are present; watchful waiting and self-care help most people here."},
			{Min: 10, Max: 14, Label: "Moderate depression", Severity: model.SeverityModerate,
				Meaning: "Symptoms at this level often interfere with daily life and are worth discussing with someone."},
			{Min: 15, Max: 19, Label: "Moderately severe depression", Severity: model.SeverityModeratelySevere,
				Meaning: "Symptoms are substantial; talking to a professional is strongly encouraged."},
			{Min: 20, Max: 27, Label: "Severe depression", Severity: model.SeveritySevere,
				Meaning: "Symptoms are serious and deserve prompt professional attention."},
		},
	}
}

func gad7() *model.QuestionnaireDefinition {
	return &model.QuestionnaireDefinition{
		ID:       "gad7",
		Version:  "1",
		Name:     "Generalized Anxiety Disorder-7",
		Category: model.CategoryAnxiety,
		Scale:    model.Scale{Min: 0, Max: 3, Anchors: frequencyAnchors()},
		Method:   model.MethodSum,
		Items: []model.Item{
			{Prompt: "Feeling nervous, anxious, or on edge"},
			{Prompt: "Not being able to stop or control worrying"},
			{Prompt: "Worrying too much about different things"},
			{Prompt: "Trouble relaxing"},
			{Prompt: "Being so restless that it is hard to sit still"},
			{Prompt: "Becoming easily annoyed or irritable"},
			{Prompt: "Feeling afraid as if something awful might happen"},
		},
		Thresholds: []model.Threshold{
			{Min: 0, Max: 4, Label: "Minimal anxiety", Severity: model.SeverityMinimal,
				Meaning: "Worry at this level is part of everyday life."},
			{Min: 5, Max: 9, Label: "Mild anxiety", Severity: model.SeverityMild,
				Meaning: "Anxiety shows up sometimes but is usually manageable."},
			{Min: 10, Max: 14, Label: "Moderate anxiety", Severity: model.SeverityModerate,
				Meaning: "Worry is frequent enough to get in the way of things you care about."},
			{Min: 15, Max: 21, Label: "Severe anxiety", Severity: model.SeveritySevere,
				Meaning: "Anxiety is taking up a lot of space; professional support tends to help."},
		},
	}
}

func pcl5() *model.QuestionnaireDefinition {
	prompts := []string{
		"Repeated, disturbing, and unwanted memories of the stressful experience",
		"Repeated, disturbing dreams of the stressful experience",
		"Suddenly feeling or acting as if the stressful experience were happening again",
		"Feeling very upset when something reminded you of the stressful experience",
		"Strong physical reactions when something reminded you of the stressful experience",
		"Avoiding memories, thoughts, or feelings related to the stressful experience",
		"Avoiding external reminders of the stressful experience",
		"Trouble remembering important parts of the stressful experience",
		"Strong negative beliefs about yourself, other people, or the world",
		"Blaming yourself or someone else for the stressful experience",
		"Strong negative feelings such as fear, horror, anger, guilt, or shame",
		"Loss of interest in activities you used to enjoy",
		"Feeling distant or cut off from other people",
		"Trouble experiencing positive feelings",
		"Irritable behavior, angry outbursts, or acting aggressively",
		"Taking too many risks or doing things that could cause you harm",
		"Being \"superalert\" or watchful or on guard",
		"Feeling jumpy or easily startled",
		"Having difficulty concentrating",
		"Trouble falling or staying asleep",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p}
	}
	return &model.QuestionnaireDefinition{
		ID:       "pcl5",
		Version:  "1",
		Name:     "PTSD Checklist for DSM-5",
		Category: model.CategoryTrauma,
		Scale:    model.Scale{Min: 0, Max: 4, Anchors: []string{"Not at all", "A little bit", "Moderately", "Quite a bit", "Extremely"}},
		Method:   model.MethodClusterDSM,
		Items:    items,
		// DSM-5 criteria B-E as contiguous item ranges
		Clusters: []model.Cluster{
			{Name: "intrusion", Start: 0, End: 5, Required: 1},
			{Name: "avoidance", Start: 5, End: 7, Required: 1},
			{Name: "cognition_mood", Start: 7, End: 14, Required: 2},
			{Name: "arousal", Start: 14, End: 20, Required: 2},
		},
		Thresholds: []model.Threshold{
			{Min: 0, Max: 10, Label: "Minimal trauma symptoms", Severity: model.SeverityMinimal,
				Meaning: "Few stress reactions reported."},
			{Min: 11, Max: 20, Label: "Mild trauma symptoms", Severity: model.SeverityMild,
				Meaning: "Some stress reactions are present but limited."},
			{Min: 21, Max: 32, Label: "Moderate trauma symptoms", Severity: model.SeverityModerate,
				Meaning: "Stress reactions are noticeable and worth attention."},
			{Min: 33, Max: 49, Label: "Elevated trauma symptoms", Severity: model.SeverityModeratelySevere,
				Meaning: "Reactions at this level often benefit from trauma-informed support."},
			{Min: 50, Max: 80, Label: "Severe trauma symptoms", Severity: model.SeveritySevere,
				Meaning: "Reactions are intense and deserve professional care."},
		},
	}
}

func ybocs() *model.QuestionnaireDefinition {
	severityLabels := []string{"None", "Mild", "Moderate", "Severe", "Extreme"}
	prompts := []string{
		"Time occupied by obsessive thoughts",
		"Interference due to obsessive thoughts",
		"Distress associated with obsessive thoughts",
		"Resistance against obsessions",
		"Degree of control over obsessive thoughts",
		"Time spent performing compulsive behaviors",
		"Interference due to compulsive behaviors",
		"Distress associated with compulsive behavior",
		"Resistance against compulsions",
		"Degree of control over compulsive behavior",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p, Labels: severityLabels}
	}
	return &model.QuestionnaireDefinition{
		ID:       "ybocs",
		Version:  "1",
		Name:     "Yale-Brown Obsessive Compulsive Scale (self-report)",
		Category: model.CategoryOCD,
		Scale:    model.Scale{Min: 0, Max: 4},
		Method:   model.MethodComposite,
		Items:    items,
		Thresholds: []model.Threshold{
			{Min: 0, Max: 7, Label: "Subclinical obsessive-compulsive symptoms", Severity: model.SeverityMinimal,
				Meaning: "Intrusive thoughts and rituals at this level are very common."},
			{Min: 8, Max: 15, Label: "Mild obsessive-compulsive symptoms", Severity: model.SeverityMild,
				Meaning: "Symptoms are present but cause limited interference."},
			{Min: 16, Max: 23, Label: "Moderate obsessive-compulsive symptoms", Severity: model.SeverityModerate,
				Meaning: "Symptoms take real time and energy; support can help."},
			{Min: 24, Max: 31, Label: "Severe obsessive-compulsive symptoms", Severity: model.SeverityModeratelySevere,
				Meaning: "Symptoms interfere substantially with daily life."},
			{Min: 32, Max: 40, Label: "Extreme obsessive-compulsive symptoms", Severity: model.SeveritySevere,
				Meaning: "Symptoms are dominating daily life and deserve prompt care."},
		},
	}
}

// MDQ item layout: items 0-12 are yes/no symptom questions, item 13 is
// the co-occurrence question, item 14 is problem level (0-3). The
// positive screen requires yes-count >= 7, co-occurrence, and at least
// moderate problem level.
const (
	MDQSymptomItems     = 13
	MDQCoOccurrenceItem = 13
	MDQImpairmentItem   = 14
	MDQYesCutoff        = 7
	MDQImpairmentCutoff = 2
)

func mdq() *model.QuestionnaireDefinition {
	prompts := []string{
		"You felt so good or hyper that other people thought you were not your normal self",
		"You were so irritable that you shouted at people or started fights",
		"You felt much more self-confident than usual",
		"You got much less sleep than usual and found you didn't really miss it",
		"You were much more talkative or spoke faster than usual",
		"Thoughts raced through your head and you couldn't slow them down",
		"You were so easily distracted that you had trouble concentrating",
		"You had much more energy than usual",
		"You were much more active or did many more things than usual",
		"You were much more social or outgoing than usual",
		"You were much more interested in sex than usual",
		"You did things that were unusual for you or that other people thought risky",
		"Spending money got you or your family into trouble",
		"Did several of these ever happen during the same period of time",
		"How much of a problem did any of these cause you",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p, Ceiling: 1}
	}
	items[MDQImpairmentItem].Ceiling = 3
	items[MDQImpairmentItem].Labels = []string{"No problem", "Minor problem", "Moderate problem", "Serious problem"}
	return &model.QuestionnaireDefinition{
		ID:       "mdq",
		Version:  "1",
		Name:     "Mood Disorder Questionnaire",
		Category: model.CategoryDepression,
		Scale:    model.Scale{Min: 0, Max: 3},
		Method:   model.MethodBinaryKeyed,
		Items:    items,
		Screen: &model.ScreenRule{
			SymptomItems:     MDQSymptomItems,
			YesCutoff:        MDQYesCutoff,
			CoOccurrenceItem: MDQCoOccurrenceItem,
			ImpairmentItem:   MDQImpairmentItem,
			ImpairmentCutoff: MDQImpairmentCutoff,
		},
		Thresholds: []model.Threshold{
			{Min: 0, Max: 6, Label: "Negative mood-episode screen", Severity: model.SeverityMinimal,
				Meaning: "Reported experiences do not suggest a past elevated-mood episode."},
			{Min: 7, Max: 17, Label: "Positive mood-episode screen", Severity: model.SeverityModerate,
				Meaning: "Reported experiences may be consistent with a past elevated-mood episode; only an evaluation can say."},
		},
	}
}

func scoff() *model.QuestionnaireDefinition {
	prompts := []string{
		"Do you make yourself sick because you feel uncomfortably full",
		"Do you worry you have lost control over how much you eat",
		"Have you recently lost more than one stone in a three month period",
		"Do you believe yourself to be fat when others say you are too thin",
		"Would you say that food dominates your life",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p}
	}
	return &model.QuestionnaireDefinition{
		ID:       "scoff",
		Version:  "1",
		Name:     "SCOFF Questionnaire",
		Category: model.CategoryEating,
		Scale:    model.Scale{Min: 0, Max: 1, Anchors: []string{"No", "Yes"}},
		Method:   model.MethodBinaryKeyed,
		Items:    items,
		Thresholds: []model.Threshold{
			{Min: 0, Max: 1, Label: "Negative eating-concerns screen", Severity: model.SeverityMinimal,
				Meaning: "Answers do not suggest a likely eating concern."},
			{Min: 2, Max: 5, Label: "Positive eating-concerns screen", Severity: model.SeverityModerate,
				Meaning: "Answers suggest eating concerns worth discussing with a professional."},
		},
	}
}

func asrs5() *model.QuestionnaireDefinition {
	anchors := []string{"Never", "Rarely", "Sometimes", "Often", "Very often"}
	prompts := []string{
		"How often do you have difficulty concentrating on what people say to you",
		"How often do you leave your seat when you are expected to stay seated",
		"How often do you have difficulty unwinding and relaxing when you have time to yourself",
		"How often do you finish the sentences of people you are talking to before they can finish them themselves",
		"How often do you put things off until the last minute",
		"How often do you depend on others to keep your life in order and attend to details",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p}
	}
	return &model.QuestionnaireDefinition{
		ID:       "asrs5",
		Version:  "1",
		Name:     "Adult ADHD Self-Report Screening Scale",
		Category: model.CategoryNeurodevelopment,
		Scale:    model.Scale{Min: 0, Max: 4, Anchors: anchors},
		Method:   model.MethodSum,
		Items:    items,
		Thresholds: []model.Threshold{
			{Min: 0, Max: 13, Label: "Attention patterns below screening cutoff", Severity: model.SeverityMinimal,
				Meaning: "Reported patterns fall within the typical range."},
			{Min: 14, Max: 24, Label: "Attention patterns above screening cutoff", Severity: model.SeverityModerate,
				Meaning: "Reported patterns are consistent with attention difficulties worth a closer look."},
		},
	}
}

func msi() *model.QuestionnaireDefinition {
	prompts := []string{
		"Have any of your closest relationships been troubled by a lot of arguments or repeated breakups",
		"Have you deliberately hurt yourself physically or made a suicide attempt",
		"Have you had at least two other problems with impulsivity",
		"Have you been extremely moody",
		"Have you felt very angry a lot of the time or often acted in an angry or sarcastic manner",
		"Have you often been distrustful of other people",
		"Have you frequently felt unreal or as if things around you were unreal",
		"Have you chronically felt empty",
		"Have you often felt that you had no idea of who you are or that you have no identity",
		"Have you made desperate efforts to avoid feeling abandoned",
	}
	items := make([]model.Item, len(prompts))
	for i, p := range prompts {
		items[i] = model.Item{Prompt: p}
	}
	return &model.QuestionnaireDefinition{
		ID:       "msi",
		Version:  "1",
		Name:     "McLean Screening Instrument",
		Category: model.CategoryPersonality,
		Scale:    model.Scale{Min: 0, Max: 1, Anchors: []string{"No", "Yes"}},
		Method:   model.MethodBinaryKeyed,
		Items:    items,
		Thresholds: []model.Threshold{
			{Min: 0, Max: 6, Label: "Negative personality-pattern screen", Severity: model.SeverityMinimal,
				Meaning: "Answers do not suggest a likely personality-related pattern."},
			{Min: 7, Max: 10, Label: "Positive personality-pattern screen", Severity: model.SeverityModerate,
				Meaning: "Answers suggest patterns worth exploring with a professional."},
		},
	}
}
