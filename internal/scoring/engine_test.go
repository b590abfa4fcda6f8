package scoring_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mindscreen/internal/model"
	"mindscreen/internal/registry"
	"mindscreen/internal/scoring"
)

var reg = registry.New()

func TestSumMethodTotalsAnswers(t *testing.T) {
	def := reg.Get("gad7")
	answers := []float64{0, 1, 2, 3, 1, 0, 2}
	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 9 {
		t.Errorf("total = %v, want 9", score.Total)
	}
	if score.MaxScore != 21 {
		t.Errorf("max = %v, want 21", score.MaxScore)
	}
	if score.Normalized < 0 || score.Normalized > 1 {
		t.Errorf("normalized %v outside [0,1]", score.Normalized)
	}
}

func TestPHQ9Example(t *testing.T) {
	def := reg.Get("phq9")
	answers := []float64{1, 2, 1, 2, 1, 1, 0, 1, 0}

	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 9 {
		t.Fatalf("total = %v, want 9", score.Total)
	}
	if score.Interpretation.Severity != model.SeverityMild {
		t.Errorf("severity = %q, want mild", score.Interpretation.Severity)
	}
	if score.Interpretation.Label == def.Thresholds[0].Label || score.Interpretation.Label == def.Thresholds[2].Label {
		t.Errorf("label %q should be distinct from minimal and moderate bands", score.Interpretation.Label)
	}
	if score.UrgentSupport() {
		t.Error("urgent support flagged with item 9 at 0")
	}

	answers[8] = 1
	score, err = scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if !score.UrgentSupport() {
		t.Error("urgent support not flagged with item 9 at 1")
	}
}

func TestGAD7AllThreesIsSevere(t *testing.T) {
	def := reg.Get("gad7")
	answers := []float64{3, 3, 3, 3, 3, 3, 3}
	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 21 {
		t.Fatalf("total = %v, want 21", score.Total)
	}
	if score.Interpretation.Severity != model.SeveritySevere {
		t.Errorf("severity = %q, want severe", score.Interpretation.Severity)
	}
}

func TestValidation(t *testing.T) {
	def := reg.Get("gad7")

	_, err := scoring.Score(def, []float64{1, 2, 3})
	var lengthErr *scoring.AnswersLengthError
	if !errors.As(err, &lengthErr) {
		t.Fatalf("short vector: got %v, want AnswersLengthError", err)
	}

	bad := [][]float64{
		{0, 0, 0, 0, 0, 0, 4},           // above scale max
		{0, 0, 0, 0, 0, 0, -1},          // below scale min
		{0, 0, 0, 0, 0, 0, 1.5},         // fractional
		{0, 0, 0, 0, 0, 0, math.NaN()},  // not finite
		{0, 0, 0, 0, 0, 0, math.Inf(1)}, // not finite
	}
	for _, answers := range bad {
		_, err := scoring.Score(def, answers)
		var valueErr *scoring.AnswerValueError
		if !errors.As(err, &valueErr) {
			t.Errorf("answers %v: got %v, want AnswerValueError", answers, err)
		}
	}
}

func TestFractionalAnswersRejected(t *testing.T) {
	// Threshold tables step in integers, so a fractional total like 9.5
	// would land between two bands. The vector must be rejected as input,
	// never reach the interpreter.
	def := reg.Get("gad7")
	_, err := scoring.Score(def, []float64{1.5, 2, 2, 1, 1, 1, 1})

	var valueErr *scoring.AnswerValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("got %v, want AnswerValueError", err)
	}
	var oor *scoring.ScoreOutOfRangeError
	if errors.As(err, &oor) {
		t.Fatal("fractional input reached the threshold interpreter")
	}
}

func TestFlagsAreDefinitionDriven(t *testing.T) {
	// The engine reads risk items and screen rules off the definition, so
	// a catalog entry it has never seen gets the same treatment.
	riskDef := &model.QuestionnaireDefinition{
		ID:        "custom_sum",
		Category:  model.CategoryAnxiety,
		Scale:     model.Scale{Min: 0, Max: 3},
		Method:    model.MethodSum,
		Items:     []model.Item{{Prompt: "a"}, {Prompt: "b"}},
		RiskItems: []int{0},
		Thresholds: []model.Threshold{
			{Min: 0, Max: 6, Label: "all", Severity: model.SeverityMinimal},
		},
	}
	score, err := scoring.Score(riskDef, []float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !score.UrgentSupport() {
		t.Error("risk item endorsed but flag not raised")
	}

	screenDef := &model.QuestionnaireDefinition{
		ID:       "custom_screen",
		Category: model.CategoryDepression,
		Scale:    model.Scale{Min: 0, Max: 1},
		Method:   model.MethodBinaryKeyed,
		Items:    []model.Item{{Prompt: "a"}, {Prompt: "b"}, {Prompt: "c"}},
		Screen: &model.ScreenRule{
			SymptomItems:     2,
			YesCutoff:        2,
			CoOccurrenceItem: 2,
			ImpairmentItem:   -1, // no impairment gate
		},
		Thresholds: []model.Threshold{
			{Min: 0, Max: 3, Label: "all", Severity: model.SeverityMinimal},
		},
	}
	score, err = scoring.Score(screenDef, []float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !score.ScreenPositive() {
		t.Error("screen rule satisfied but flag not set")
	}

	score, err = scoring.Score(screenDef, []float64{1, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if score.ScreenPositive() {
		t.Error("co-occurrence gate ignored")
	}
}

func TestMDQBinaryCriteria(t *testing.T) {
	def := reg.Get("mdq")

	// 8 yes symptoms, co-occurrence yes, moderate problem: positive screen
	answers := make([]float64, 15)
	for i := 0; i < 8; i++ {
		answers[i] = 1
	}
	answers[registry.MDQCoOccurrenceItem] = 1
	answers[registry.MDQImpairmentItem] = 2

	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if !score.ScreenPositive() {
		t.Error("expected positive screen with all criteria met")
	}
	if got := score.Components[model.ComponentYesCount]; got != 8 {
		t.Errorf("yes count = %v, want 8", got)
	}

	// Same symptom load without co-occurrence: negative screen even
	// though the total lands in the top band
	answers[registry.MDQCoOccurrenceItem] = 0
	answers[registry.MDQImpairmentItem] = 3
	score, err = scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.ScreenPositive() {
		t.Error("expected negative screen without co-occurrence")
	}
	if score.Interpretation.Severity == model.SeverityMinimal {
		t.Error("total should still land in the elevated band")
	}
}

func TestPCL5ClusterCounting(t *testing.T) {
	def := reg.Get("pcl5")
	answers := make([]float64, 20)
	// Endorse (>=2) one intrusion item, one avoidance item, two
	// cognition/mood items, two arousal items: every cluster criterion met
	answers[0] = 3
	answers[5] = 2
	answers[8], answers[9] = 2, 4
	answers[15], answers[16] = 2, 2

	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{
		"cluster_intrusion":      1,
		"cluster_avoidance":      1,
		"cluster_cognition_mood": 2,
		"cluster_arousal":        2,
	}
	for name, count := range want {
		if got := score.Components[name]; got != count {
			t.Errorf("%s = %v, want %v", name, got, count)
		}
	}
	if !score.ScreenPositive() {
		t.Error("cluster criteria met but flag not set")
	}

	// Losing the avoidance endorsement breaks the criterion
	answers[5] = 1
	score, err = scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.ScreenPositive() {
		t.Error("flag set with avoidance cluster unmet")
	}
}

func TestYBOCSCompositeSubscales(t *testing.T) {
	def := reg.Get("ybocs")
	answers := []float64{2, 2, 2, 2, 2, 1, 1, 1, 1, 1}
	score, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 15 {
		t.Errorf("total = %v, want 15", score.Total)
	}
	if got := score.Components[model.ComponentObsessions]; got != 10 {
		t.Errorf("obsessions = %v, want 10", got)
	}
	if got := score.Components[model.ComponentCompulsions]; got != 5 {
		t.Errorf("compulsions = %v, want 5", got)
	}
	if got := score.Components[model.ComponentObsessions+"_normalized"]; got != 0.5 {
		t.Errorf("obsessions normalized = %v, want 0.5", got)
	}
}

func TestSalientItems(t *testing.T) {
	def := reg.Get("gad7")
	score, err := scoring.Score(def, []float64{0, 3, 1, 0, 2, 3, 0})
	if err != nil {
		t.Fatal(err)
	}
	// Top three non-zero answers, highest first, index order on ties
	if diff := cmp.Diff([]int{1, 5, 4}, score.SalientItems); diff != "" {
		t.Errorf("salient items mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	def := reg.Get("phq9")
	answers := []float64{1, 2, 1, 2, 1, 1, 0, 1, 0}
	a, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	b, err := scoring.Score(def, answers)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical input produced different scores (-a +b):\n%s", diff)
	}
}
