package applicationRepo

import (
	"context"
	"fmt"
	"time"

	"courtflow/database"
	"courtflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoApplicationRepo implements ApplicationRepository using MongoDB.
type MongoApplicationRepo struct {
	coll *mongo.Collection
}

// NewMongoApplicationRepo creates a new instance of ApplicationRepository using MongoDB.
func NewMongoApplicationRepo() ApplicationRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("juror_applications")
	repo := &MongoApplicationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create application indexes: %v\n", err)
	}
	return repo
}

func (r *MongoApplicationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "case_id", Value: 1}},
			Options: options.Index().SetName("case_idx"),
		},
		{
			Keys:    bson.D{{Key: "case_id", Value: 1}, {Key: "juror_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_juror_per_case"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert stores a new juror application.
func (r *MongoApplicationRepo) Insert(ctx context.Context, app *models.JurorApplication) error {
	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("error creating juror application: %w", err)
	}
	return nil
}

// ListByCase retrieves all applications for a case, any status.
func (r *MongoApplicationRepo) ListByCase(ctx context.Context, caseID string) ([]models.JurorApplication, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"case_id": caseID})
	if err != nil {
		return nil, fmt.Errorf("error listing applications for case %s: %w", caseID, err)
	}
	defer cursor.Close(ctx)

	var apps []models.JurorApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("error decoding applications: %w", err)
	}
	return apps, nil
}

// DeleteByCase removes all applications for a case. A zero count on retry is
// fine: the purge is idempotent.
func (r *MongoApplicationRepo) DeleteByCase(ctx context.Context, caseID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"case_id": caseID})
	if err != nil {
		return 0, fmt.Errorf("error purging applications for case %s: %w", caseID, err)
	}
	return res.DeletedCount, nil
}
