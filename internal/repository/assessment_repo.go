package repository

import (
	"context"

	"riskscope/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssessmentRepo archives finished assessment bundles and underwriter
// decisions to MongoDB
type AssessmentRepo interface {
	SaveBundle(ctx context.Context, bundle *model.AssessmentBundle) error
	GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error)
	SaveDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error
	GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error)
}

type assessmentRepo struct {
	bundles   *mongo.Collection
	decisions *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		bundles:   db.Collection("assessment_bundles"),
		decisions: db.Collection("underwriter_decisions"),
	}
}

func (r *assessmentRepo) SaveBundle(ctx context.Context, bundle *model.AssessmentBundle) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.bundles.ReplaceOne(ctx, bson.M{"_id": bundle.SessionID}, bundle, opts)
	return err
}

func (r *assessmentRepo) GetBundle(ctx context.Context, sessionID string) (*model.AssessmentBundle, error) {
	var bundle model.AssessmentBundle
	err := r.bundles.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&bundle)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *assessmentRepo) SaveDecision(ctx context.Context, sessionID string, decision *model.UnderwriterDecision) error {
	opts := options.Replace().SetUpsert(true)
	doc := bson.M{
		"_id":          sessionID,
		"decision":     decision.Decision,
		"timestamp":    decision.Timestamp,
		"assessmentId": decision.AssessmentID,
	}
	_, err := r.decisions.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, opts)
	return err
}

func (r *assessmentRepo) GetDecision(ctx context.Context, sessionID string) (*model.UnderwriterDecision, error) {
	var decision model.UnderwriterDecision
	err := r.decisions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&decision)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &decision, nil
}
