package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindscreen/internal/model"
)

// ReportCacheRepo is the persisted tier of the report cache. One row per
// profile hash, upsert semantics; best-effort by contract, a write
// failure never fails the request.
type ReportCacheRepo interface {
	Get(ctx context.Context, profileHash string) (*model.CacheEntry, error)
	Upsert(ctx context.Context, profileHash string, entry *model.CacheEntry) error
}

type cacheRow struct {
	ProfileHash string             `bson:"_id"`
	Text        string             `bson:"text"`
	Source      model.ReportSource `bson:"source"`
	Err         string             `bson:"error,omitempty"`
	ExpiresAt   time.Time          `bson:"expiresAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type reportCacheRepo struct {
	rows *mongo.Collection
}

// NewReportCacheRepo creates the persisted report-cache repository
func NewReportCacheRepo(db *mongo.Database) ReportCacheRepo {
	return &reportCacheRepo{rows: db.Collection("report_cache")}
}

func (r *reportCacheRepo) Get(ctx context.Context, profileHash string) (*model.CacheEntry, error) {
	var row cacheRow
	err := r.rows.FindOne(ctx, bson.M{"_id": profileHash}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.CacheEntry{
		Text:      row.Text,
		Source:    row.Source,
		Err:       row.Err,
		ExpiresAt: row.ExpiresAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *reportCacheRepo) Upsert(ctx context.Context, profileHash string, entry *model.CacheEntry) error {
	row := cacheRow{
		ProfileHash: profileHash,
		Text:        entry.Text,
		Source:      entry.Source,
		Err:         entry.Err,
		ExpiresAt:   entry.ExpiresAt,
		UpdatedAt:   entry.UpdatedAt,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.rows.ReplaceOne(ctx, bson.M{"_id": profileHash}, row, opts)
	return err
}
