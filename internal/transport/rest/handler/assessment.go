package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mindscreen/internal/model"
	"mindscreen/internal/scoring"
	"mindscreen/internal/service"
)

const (
	methodologyNote = "Scores are computed deterministically from your answers using established self-report questionnaires. Severity bands are the instruments' published interpretation ranges."
	safetyNote      = "This screening is not a diagnosis and cannot replace a professional evaluation. If you are in crisis or thinking about harming yourself, contact local emergency services or a crisis line right away."
)

// AssessmentHandler handles scoring and report endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	reportSvc     *service.ReportService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService, reportSvc *service.ReportService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc, reportSvc: reportSvc}
}

// FullAssessmentRequest is the grouped submission body
type FullAssessmentRequest struct {
	Answers map[string][]float64 `json:"answers"`
}

// FullAssessmentResponse carries every score plus the cross-category view
type FullAssessmentResponse struct {
	Scores           map[string]*model.QuestionnaireScore `json:"scores"`
	CategoryScores   map[model.Category]float64           `json:"categoryScores"`
	DominantCategory model.Category                       `json:"dominantCategory"`
	UrgentSupport    bool                                 `json:"urgentSupportRecommended"`
	Methodology      string                               `json:"methodology"`
	Safety           string                               `json:"safety"`
}

// SubmitFull handles POST /v1/assessments/full
func (h *AssessmentHandler) SubmitFull(w http.ResponseWriter, r *http.Request) {
	var req FullAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers required")
		return
	}

	results, err := h.assessmentSvc.ScoreAll(r.Context(), req.Answers)
	if err != nil {
		writeScoringError(w, err)
		return
	}

	urgent := false
	if s, ok := results.Scores["phq9"]; ok {
		urgent = s.UrgentSupport()
	}
	writeJSON(w, http.StatusOK, FullAssessmentResponse{
		Scores:           results.Scores,
		CategoryScores:   results.CategoryScores,
		DominantCategory: results.DominantCategory,
		UrgentSupport:    urgent,
		Methodology:      methodologyNote,
		Safety:           safetyNote,
	})
}

// InstrumentRequest is the single-instrument submission body
type InstrumentRequest struct {
	Answers []float64 `json:"answers"`
	Report  string    `json:"report,omitempty"` // "ai" or "natural" (default)
}

// InstrumentResponse is one score plus its report
type InstrumentResponse struct {
	Score       *model.QuestionnaireScore `json:"score"`
	Report      *model.ReportResult       `json:"report"`
	Methodology string                    `json:"methodology"`
	Safety      string                    `json:"safety"`
}

// SubmitInstrument handles POST /v1/assessments/{instrument}
func (h *AssessmentHandler) SubmitInstrument(w http.ResponseWriter, r *http.Request) {
	instrument := mux.Vars(r)["instrument"]
	if h.assessmentSvc.Registry().Get(instrument) == nil {
		writeError(w, http.StatusNotFound, "unknown instrument")
		return
	}

	var req InstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.assessmentSvc.ScoreInstrument(r.Context(), instrument, req.Answers)
	if err != nil {
		writeScoringError(w, err)
		return
	}

	results := scoring.BuildResults(map[string]*model.QuestionnaireScore{instrument: score})
	var rep *model.ReportResult
	if req.Report == "ai" {
		rep, err = h.reportSvc.Generate(r.Context(), results)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "report generation failed")
			return
		}
	} else {
		rep = h.reportSvc.Deterministic(results)
	}

	writeJSON(w, http.StatusOK, InstrumentResponse{
		Score:       score,
		Report:      rep,
		Methodology: methodologyNote,
		Safety:      safetyNote,
	})
}

// InstrumentCapability is the static metadata served by the GET variants
type InstrumentCapability struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Method    string `json:"method"`
	ItemCount int    `json:"itemCount"`
	ScaleMin  int    `json:"scaleMin"`
	ScaleMax  int    `json:"scaleMax"`

	// ItemCeilings lists the effective per-item maximum when any item
	// accepts less than the scale maximum (e.g. yes/no items on a wider
	// scale). Absent when every item spans the full scale.
	ItemCeilings []int    `json:"itemCeilings,omitempty"`
	Methods      []string `json:"acceptedMethods"`
}

func capability(def *model.QuestionnaireDefinition) InstrumentCapability {
	c := InstrumentCapability{
		ID:        def.ID,
		Name:      def.Name,
		Category:  string(def.Category),
		Method:    string(def.Method),
		ItemCount: len(def.Items),
		ScaleMin:  def.Scale.Min,
		ScaleMax:  def.Scale.Max,
		Methods:   []string{"GET", "POST"},
	}
	ceilings := make([]int, len(def.Items))
	uniform := true
	for i := range def.Items {
		ceilings[i] = def.ItemMax(i)
		if ceilings[i] != def.Scale.Max {
			uniform = false
		}
	}
	if !uniform {
		c.ItemCeilings = ceilings
	}
	return c
}

// DescribeFull handles GET /v1/assessments/full
func (h *AssessmentHandler) DescribeFull(w http.ResponseWriter, r *http.Request) {
	var caps []InstrumentCapability
	for _, def := range h.assessmentSvc.Registry().All() {
		caps = append(caps, capability(def))
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"instruments": caps,
		"required":    service.CoreInstruments,
	})
}

// DescribeInstrument handles GET /v1/assessments/{instrument}
func (h *AssessmentHandler) DescribeInstrument(w http.ResponseWriter, r *http.Request) {
	def := h.assessmentSvc.Registry().Get(mux.Vars(r)["instrument"])
	if def == nil {
		writeError(w, http.StatusNotFound, "unknown instrument")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, capability(def))
}

// writeScoringError maps scoring failures onto the status taxonomy:
// bad input is 400, a threshold gap is an internal defect and stays 500.
func writeScoringError(w http.ResponseWriter, err error) {
	var lengthErr *scoring.AnswersLengthError
	var valueErr *scoring.AnswerValueError
	var unknownErr *service.UnknownInstrumentError
	var missingErr *service.MissingInstrumentError
	switch {
	case errors.As(err, &lengthErr), errors.As(err, &valueErr),
		errors.As(err, &unknownErr), errors.As(err, &missingErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
