package service

import (
	"context"
	"fmt"
	"log"

	"mindscreen/internal/model"
	"mindscreen/internal/registry"
	"mindscreen/internal/repository"
	"mindscreen/internal/scoring"
)

// CoreInstruments must all be present in a full-assessment submission
var CoreInstruments = []string{"phq9", "gad7", "pcl5", "ybocs"}

// UnknownInstrumentError names an instrument the catalog does not carry
type UnknownInstrumentError struct {
	ID string
}

func (e *UnknownInstrumentError) Error() string {
	return fmt.Sprintf("unknown instrument %q", e.ID)
}

// MissingInstrumentError marks a full submission without a core instrument
type MissingInstrumentError struct {
	ID string
}

func (e *MissingInstrumentError) Error() string {
	return fmt.Sprintf("missing answers for %q", e.ID)
}

// AssessmentService validates and scores submissions
type AssessmentService struct {
	registry    *registry.Registry
	submissions repository.SubmissionRepo
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(reg *registry.Registry, submissions repository.SubmissionRepo) *AssessmentService {
	return &AssessmentService{registry: reg, submissions: submissions}
}

// Registry exposes the catalog for capability metadata
func (s *AssessmentService) Registry() *registry.Registry {
	return s.registry
}

// ScoreInstrument scores one instrument's answer vector
func (s *AssessmentService) ScoreInstrument(ctx context.Context, id string, answers []float64) (*model.QuestionnaireScore, error) {
	def := s.registry.Get(id)
	if def == nil {
		return nil, &UnknownInstrumentError{ID: id}
	}
	score, err := scoring.Score(def, answers)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, map[string][]float64{id: answers})
	return score, nil
}

// ScoreAll scores a grouped submission. Every core instrument must be
// present; extra catalog instruments are scored too.
func (s *AssessmentService) ScoreAll(ctx context.Context, answers map[string][]float64) (*model.AssessmentResults, error) {
	for _, id := range CoreInstruments {
		if _, ok := answers[id]; !ok {
			return nil, &MissingInstrumentError{ID: id}
		}
	}

	scores := make(map[string]*model.QuestionnaireScore, len(answers))
	for id, vector := range answers {
		def := s.registry.Get(id)
		if def == nil {
			return nil, &UnknownInstrumentError{ID: id}
		}
		score, err := scoring.Score(def, vector)
		if err != nil {
			return nil, err
		}
		scores[id] = score
	}

	s.persist(ctx, answers)
	return scoring.BuildResults(scores), nil
}

// persist stores the raw submission. Best-effort: a storage failure is
// logged and the request continues.
func (s *AssessmentService) persist(ctx context.Context, answers map[string][]float64) {
	if s.submissions == nil {
		return
	}
	if _, err := s.submissions.Insert(ctx, answers); err != nil {
		log.Printf("assessment: submission persist failed: %v", err)
	}
}
