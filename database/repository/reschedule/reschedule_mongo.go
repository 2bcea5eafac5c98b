package rescheduleRepo

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

// MongoRescheduleRepo implements RescheduleRepository using MongoDB.
type MongoRescheduleRepo struct {
	requestColl  *mongo.Collection
	proposalColl *mongo.Collection
}

// NewMongoRescheduleRepo constructs a new instance of MongoRescheduleRepo.
func NewMongoRescheduleRepo() RescheduleRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoRescheduleRepo{
		requestColl:  db.Collection("reschedule_requests"),
		proposalColl: db.Collection("reschedule_proposals"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reschedule indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the partial unique indexes that back the
// one-pending-request and one-open-proposal invariants.
func (r *MongoRescheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requestModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "case_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_pending_per_case").
				SetPartialFilterExpression(bson.M{"status": models.RescheduleStatusPending}),
		},
	}
	if _, err := r.requestColl.Indexes().CreateMany(ctx, requestModels); err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}

	proposalModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "case_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_open_per_case").
				SetPartialFilterExpression(bson.M{"status": models.ProposalStatusOpen}),
		},
	}
	if _, err := r.proposalColl.Indexes().CreateMany(ctx, proposalModels); err != nil {
		return fmt.Errorf("failed to create proposal indexes: %w", err)
	}
	return nil
}

// CreateRequest inserts a pending request. The partial unique index on
// case_id catches the race where two requests for one case are created
// concurrently.
func (r *MongoRescheduleRepo) CreateRequest(ctx context.Context, req *models.RescheduleRequest) error {
	if _, err := r.requestColl.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicatePending
		}
		return fmt.Errorf("error creating reschedule request: %w", err)
	}
	return nil
}

// GetRequest retrieves a request by ID, or nil if absent.
func (r *MongoRescheduleRepo) GetRequest(ctx context.Context, id string) (*models.RescheduleRequest, error) {
	var req models.RescheduleRequest
	if err := r.requestColl.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching reschedule request %s: %w", id, err)
	}
	return &req, nil
}

// FindPendingByCase returns the case's pending request, or nil.
func (r *MongoRescheduleRepo) FindPendingByCase(ctx context.Context, caseID string) (*models.RescheduleRequest, error) {
	filter := bson.M{"case_id": caseID, "status": models.RescheduleStatusPending}

	var req models.RescheduleRequest
	if err := r.requestColl.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching pending request for case %s: %w", caseID, err)
	}
	return &req, nil
}

// ResolveRequest moves a pending request to a terminal status. The filter on
// status serializes concurrent resolutions: one matches, the rest see
// ErrNotPending. Terminal records are never written again.
func (r *MongoRescheduleRepo) ResolveRequest(ctx context.Context, id, status, adminID, comments string, at time.Time) error {
	filter := bson.M{"id": id, "status": models.RescheduleStatusPending}
	update := bson.M{"$set": bson.M{
		"status":         status,
		"admin_id":       adminID,
		"admin_comments": comments,
		"responded_at":   at,
	}}

	res, err := r.requestColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error resolving reschedule request %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}

// CreateProposal inserts an open admin proposal.
func (r *MongoRescheduleRepo) CreateProposal(ctx context.Context, p *models.AdminRescheduleProposal) error {
	if _, err := r.proposalColl.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateOpen
		}
		return fmt.Errorf("error creating reschedule proposal: %w", err)
	}
	return nil
}

// GetOpenProposalByCase returns the case's open proposal, or nil.
func (r *MongoRescheduleRepo) GetOpenProposalByCase(ctx context.Context, caseID string) (*models.AdminRescheduleProposal, error) {
	filter := bson.M{"case_id": caseID, "status": models.ProposalStatusOpen}

	var p models.AdminRescheduleProposal
	if err := r.proposalColl.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching open proposal for case %s: %w", caseID, err)
	}
	return &p, nil
}

// ConfirmProposal closes an open proposal with the chosen slot.
func (r *MongoRescheduleRepo) ConfirmProposal(ctx context.Context, id string, chosen models.TimeSlot, at time.Time) error {
	filter := bson.M{"id": id, "status": models.ProposalStatusOpen}
	update := bson.M{"$set": bson.M{
		"status":       models.ProposalStatusConfirmed,
		"chosen_slot":  chosen,
		"responded_at": at,
	}}

	res, err := r.proposalColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error confirming proposal %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotOpen
	}
	return nil
}

// WithdrawProposal closes an open proposal without a selection. The same
// status guard serializes a withdraw racing a confirmation.
func (r *MongoRescheduleRepo) WithdrawProposal(ctx context.Context, id string, at time.Time) error {
	filter := bson.M{"id": id, "status": models.ProposalStatusOpen}
	update := bson.M{"$set": bson.M{
		"status":       models.ProposalStatusWithdrawn,
		"responded_at": at,
	}}

	res, err := r.proposalColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error withdrawing proposal %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotOpen
	}
	return nil
}
