package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"mindscreen/internal/model"
)

// SubmissionRepo stores raw answer submissions. Writes are best-effort;
// a failure here never fails the scoring request.
type SubmissionRepo interface {
	Insert(ctx context.Context, answers map[string][]float64) (string, error)
}

type submissionRepo struct {
	submissions *mongo.Collection
}

// NewSubmissionRepo creates the raw-submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{submissions: db.Collection("submissions")}
}

func (r *submissionRepo) Insert(ctx context.Context, answers map[string][]float64) (string, error) {
	sub := model.Submission{
		ID:          uuid.NewString(),
		Answers:     answers,
		SubmittedAt: time.Now(),
	}
	if _, err := r.submissions.InsertOne(ctx, sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}
