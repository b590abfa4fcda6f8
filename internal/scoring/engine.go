package scoring

import (
	"fmt"
	"math"
	"sort"

	"mindscreen/internal/model"
)

// Validation errors. Always a 400-class rejection at the HTTP boundary,
// never retried.
type AnswersLengthError struct {
	QuestionnaireID string
	Got             int
	Want            int
}

func (e *AnswersLengthError) Error() string {
	return fmt.Sprintf("%s: expected %d answers, got %d", e.QuestionnaireID, e.Want, e.Got)
}

type AnswerValueError struct {
	QuestionnaireID string
	Index           int
	Value           float64
	Min             float64
	Max             float64
}

func (e *AnswerValueError) Error() string {
	return fmt.Sprintf("%s: answer %d value %v is not an integer in [%v, %v]", e.QuestionnaireID, e.Index, e.Value, e.Min, e.Max)
}

// Score reduces an answer vector to a QuestionnaireScore. Pure and
// deterministic; safe to call concurrently.
func Score(def *model.QuestionnaireDefinition, answers []float64) (*model.QuestionnaireScore, error) {
	if len(answers) != len(def.Items) {
		return nil, &AnswersLengthError{QuestionnaireID: def.ID, Got: len(answers), Want: len(def.Items)}
	}
	for i, v := range answers {
		min, max := float64(def.Scale.Min), float64(def.ItemMax(i))
		// Scales are discrete Likert points; a fractional answer would
		// slip between the integer threshold bands.
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < min || v > max {
			return nil, &AnswerValueError{QuestionnaireID: def.ID, Index: i, Value: v, Min: min, Max: max}
		}
	}

	score := &model.QuestionnaireScore{
		QuestionnaireID: def.ID,
		Version:         def.Version,
		Category:        def.Category,
		MaxScore:        float64(def.MaxScore()),
		SalientItems:    salientItems(answers, 3),
	}

	switch def.Method {
	case model.MethodSum:
		scoreSum(def, answers, score)
	case model.MethodBinaryKeyed:
		scoreBinaryKeyed(def, answers, score)
	case model.MethodClusterDSM:
		scoreClusterDSM(def, answers, score)
	case model.MethodComposite:
		scoreComposite(def, answers, score)
	default:
		return nil, fmt.Errorf("%s: unknown scoring method %q", def.ID, def.Method)
	}

	if score.MaxScore > 0 {
		score.Normalized = score.Total / score.MaxScore
	}

	interp, err := Interpret(score.Total, def.Thresholds)
	if err != nil {
		// Threshold tables are validated at startup, so a miss here is
		// a configuration defect that must fail loud.
		return nil, fmt.Errorf("%s: %w", def.ID, err)
	}
	score.Interpretation = interp
	return score, nil
}

func sum(answers []float64) float64 {
	total := 0.0
	for _, v := range answers {
		total += v
	}
	return total
}

func scoreSum(def *model.QuestionnaireDefinition, answers []float64, score *model.QuestionnaireScore) {
	score.Total = sum(answers)
	if len(def.RiskItems) == 0 {
		return
	}
	urgent := 0.0
	for _, i := range def.RiskItems {
		if answers[i] > 0 {
			urgent = 1
		}
	}
	score.Components = map[string]float64{model.ComponentUrgentSupport: urgent}
}

// scoreBinaryKeyed totals the answers and derives the structured screen
// criteria. With a ScreenRule the positive screen requires the yes-count
// cutoff plus the co-occurrence and impairment gates; the severity label
// alone is not the screen. Without one, the screen is simply the
// instrument's top threshold band.
func scoreBinaryKeyed(def *model.QuestionnaireDefinition, answers []float64, score *model.QuestionnaireScore) {
	score.Total = sum(answers)
	score.Components = map[string]float64{}

	if rule := def.Screen; rule != nil {
		yes := 0.0
		for i := 0; i < rule.SymptomItems && i < len(answers); i++ {
			if answers[i] > 0 {
				yes++
			}
		}
		score.Components[model.ComponentYesCount] = yes

		co, impair := 1.0, math.Inf(1)
		if rule.CoOccurrenceItem >= 0 {
			co = answers[rule.CoOccurrenceItem]
			score.Components[model.ComponentCoOccurrence] = co
		}
		if rule.ImpairmentItem >= 0 {
			impair = answers[rule.ImpairmentItem]
			score.Components[model.ComponentImpairment] = impair
		}
		if yes >= float64(rule.YesCutoff) && co > 0 && impair >= float64(rule.ImpairmentCutoff) {
			score.Components[model.ComponentScreenFlag] = 1
		} else {
			score.Components[model.ComponentScreenFlag] = 0
		}
		return
	}

	yes := 0.0
	for _, v := range answers {
		if v > 0 {
			yes++
		}
	}
	score.Components[model.ComponentYesCount] = yes
	// Cutoff is the lower bound of the instrument's top threshold band.
	top := def.Thresholds[len(def.Thresholds)-1]
	if score.Total >= top.Min {
		score.Components[model.ComponentScreenFlag] = 1
	} else {
		score.Components[model.ComponentScreenFlag] = 0
	}
}

// scoreClusterDSM sums the vector and counts, per DSM-style symptom
// cluster, how many items were endorsed at moderate or above. The
// cluster criterion flag is set when every cluster meets its required
// count.
func scoreClusterDSM(def *model.QuestionnaireDefinition, answers []float64, score *model.QuestionnaireScore) {
	score.Total = sum(answers)
	score.Components = map[string]float64{}

	const endorsed = 2 // "moderately" or above counts as a symptom
	met := len(def.Clusters) > 0
	for _, cl := range def.Clusters {
		count := 0.0
		for i := cl.Start; i < cl.End && i < len(answers); i++ {
			if answers[i] >= endorsed {
				count++
			}
		}
		score.Components["cluster_"+cl.Name] = count
		if count < float64(cl.Required) {
			met = false
		}
	}
	if met {
		score.Components[model.ComponentScreenFlag] = 1
	} else {
		score.Components[model.ComponentScreenFlag] = 0
	}
}

// scoreComposite splits the vector into two equal sub-scales (obsessions
// then compulsions) and reports each alongside the combined total.
func scoreComposite(def *model.QuestionnaireDefinition, answers []float64, score *model.QuestionnaireScore) {
	half := len(answers) / 2
	obs := sum(answers[:half])
	comp := sum(answers[half:])
	subMax := score.MaxScore / 2

	score.Total = obs + comp
	score.Components = map[string]float64{
		model.ComponentObsessions:  obs,
		model.ComponentCompulsions: comp,
	}
	if subMax > 0 {
		score.Components[model.ComponentObsessions+"_normalized"] = obs / subMax
		score.Components[model.ComponentCompulsions+"_normalized"] = comp / subMax
	}
}

// salientItems returns the indices of the top n non-zero answers,
// highest value first, index order on ties.
func salientItems(answers []float64, n int) []int {
	idx := make([]int, 0, len(answers))
	for i, v := range answers {
		if v > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return answers[idx[a]] > answers[idx[b]] })
	if len(idx) > n {
		idx = idx[:n]
	}
	return idx
}
