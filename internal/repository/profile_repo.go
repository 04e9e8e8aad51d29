package repository

import (
	"context"
	"time"

	"riskscope/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepo handles MongoDB operations for subject profiles
type ProfileRepo interface {
	Create(ctx context.Context, profile *model.SubjectProfile) (string, error)
	GetByID(ctx context.Context, id string) (*model.SubjectProfile, error)
	List(ctx context.Context) ([]*model.SubjectProfile, error)
	Update(ctx context.Context, id string, update *model.SubjectProfile) (*model.SubjectProfile, error)
	Delete(ctx context.Context, id string) error
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("medical_records"),
	}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.SubjectProfile) (string, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.ID = primitive.NewObjectID().Hex()

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*model.SubjectProfile, error) {
	var profile model.SubjectProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context) ([]*model.SubjectProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []*model.SubjectProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) Update(ctx context.Context, id string, update *model.SubjectProfile) (*model.SubjectProfile, error) {
	update.ID = id
	update.UpdatedAt = time.Now()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated model.SubjectProfile
	err := r.collection.FindOneAndReplace(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
