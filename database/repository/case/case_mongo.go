package caseRepo

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

// MongoCaseRepo implements CaseRepository using MongoDB.
type MongoCaseRepo struct {
	coll *mongo.Collection
}

// NewMongoCaseRepo creates a new instance of CaseRepository using MongoDB.
func NewMongoCaseRepo() CaseRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("cases")
	repo := &MongoCaseRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create case indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for the case collection. The partial unique
// index on (jurisdiction, date, time) is the final arbiter for slot claims:
// two transactions moving different cases onto the same slot cannot both
// commit.
func (r *MongoCaseRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "jurisdiction", Value: 1},
				{Key: "scheduled_date", Value: 1},
				{Key: "scheduled_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_scheduled_slot").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": models.ScheduledStatuses()}}),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_idx"),
		},
		{
			Keys:    bson.D{{Key: "attorney_id", Value: 1}},
			Options: options.Index().SetName("attorney_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
