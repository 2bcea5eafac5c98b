package caseRepo

import (
	"context"
	"fmt"
	"time"

	"courtflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new case record.
func (r *MongoCaseRepo) Create(ctx context.Context, c *models.Case) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("error creating case: %w", err)
	}
	return nil
}

// GetByID retrieves a case by its unique ID.
func (r *MongoCaseRepo) GetByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching case with id %s: %w", id, err)
	}
	return &c, nil
}

// SetStatus updates the case status.
func (r *MongoCaseRepo) SetStatus(ctx context.Context, caseID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": caseID}, update)
	if err != nil {
		return fmt.Errorf("error updating status for case %s: %w", caseID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("case %s not found", caseID)
	}
	return nil
}
