package caseRepo

import (
	"context"
	"fmt"
	"time"

	"courtflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// scheduledFilter matches the statuses in which a case occupies its slot.
func scheduledFilter() bson.M {
	return bson.M{"$in": models.ScheduledStatuses()}
}

// FindScheduledBySlot returns the case currently holding the given slot in
// the jurisdiction pool, or nil if the slot is free. A case reopened for
// applications still occupies its slot. Each call hits the store fresh;
// availability is never cached.
func (r *MongoCaseRepo) FindScheduledBySlot(ctx context.Context, jurisdiction string, slot models.TimeSlot) (*models.Case, error) {
	filter := bson.M{
		"jurisdiction":   jurisdiction,
		"scheduled_date": slot.Date,
		"scheduled_time": slot.Time,
		"status":         scheduledFilter(),
	}

	var c models.Case
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking slot %s in %s: %w", slot, jurisdiction, err)
	}
	return &c, nil
}

// ListScheduled retrieves every case holding a trial slot, whether awaiting
// trial or reopened for applications.
func (r *MongoCaseRepo) ListScheduled(ctx context.Context) ([]models.Case, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": scheduledFilter()})
	if err != nil {
		return nil, fmt.Errorf("error listing scheduled cases: %w", err)
	}
	defer cursor.Close(ctx)

	var cases []models.Case
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("error decoding cases: %w", err)
	}
	return cases, nil
}

// MoveSchedule swaps the case's slot and resets the reminder flags in one
// conditional update. The filter repeats the slot the caller read so the
// check-then-act gap closes at commit time, not just at validation.
func (r *MongoCaseRepo) MoveSchedule(ctx context.Context, caseID string, from, to models.TimeSlot) error {
	filter := bson.M{
		"id":             caseID,
		"scheduled_date": from.Date,
		"scheduled_time": from.Time,
		"status":         scheduledFilter(),
	}
	update := bson.M{"$set": bson.M{
		"scheduled_date": to.Date,
		"scheduled_time": to.Time,
		"reminders":      models.ReminderState{},
		"updated_at":     time.Now().UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error moving schedule for case %s: %w", caseID, err)
	}
	if res.MatchedCount == 0 {
		return ErrStaleSchedule
	}
	return nil
}

// MarkReminderSent flips one reminder flag, guarded on its current false
// value. The guard makes the flag transition the source of truth for
// "already sent": overlapping ticks race here and exactly one wins.
func (r *MongoCaseRepo) MarkReminderSent(ctx context.Context, caseID string, t models.ReminderThreshold) (bool, error) {
	field := "reminders." + t.Field()
	filter := bson.M{
		"id":     caseID,
		"status": scheduledFilter(),
		field:    false,
	}
	update := bson.M{"$set": bson.M{field: true, "updated_at": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error marking %dd reminder for case %s: %w", t, caseID, err)
	}
	return res.ModifiedCount > 0, nil
}
