// internal/interface/repository/disruption_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDisruptionRepository implements the DisruptionRepository interface
type MongoDisruptionRepository struct {
	collection *mongo.Collection
}

// NewMongoDisruptionRepository creates a new MongoDB disruption repository
func NewMongoDisruptionRepository(db *mongo.Database) repository.DisruptionRepository {
	collection := db.Collection("disruptionLogs")

	// Create indexes for better performance
	ctx := context.Background()

	eventIDIndex := mongo.IndexModel{
		Keys:    bson.M{"eventId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on processStatus for finding disruptions by status
	processStatusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	// Index on reportedAt for sorting and filtering
	reportedAtIndex := mongo.IndexModel{
		Keys: bson.M{"reportedAt": -1},
	}

	// Compound index for finding unprocessed disruptions efficiently
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "reportedAt", Value: 1},
		},
	}

	// Create all indexes
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		eventIDIndex,
		processStatusIndex,
		reportedAtIndex,
		unprocessedIndex,
	})

	return &MongoDisruptionRepository{
		collection: collection,
	}
}

// Save saves a disruption event to MongoDB
func (r *MongoDisruptionRepository) Save(ctx context.Context, disruption *entity.Disruption) error {
	if disruption.ProcessStatus == "" {
		disruption.ProcessStatus = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, disruption)
	return err
}

// FindByID finds a disruption by ID
func (r *MongoDisruptionRepository) FindByID(ctx context.Context, id string) (*entity.Disruption, error) {
	var disruption entity.Disruption
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&disruption)
	if err != nil {
		return nil, err
	}
	return &disruption, nil
}

// FindByEventID finds a disruption by ops feed event ID
func (r *MongoDisruptionRepository) FindByEventID(ctx context.Context, eventID string) (*entity.Disruption, error) {
	var disruption entity.Disruption
	err := r.collection.FindOne(ctx, bson.M{"eventId": eventID}).Decode(&disruption)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &disruption, nil
}

// FindByEventIDs finds multiple disruptions by ops feed event IDs (batch operation)
func (r *MongoDisruptionRepository) FindByEventIDs(ctx context.Context, eventIDs []string) (map[string]*entity.Disruption, error) {
	if len(eventIDs) == 0 {
		return make(map[string]*entity.Disruption), nil
	}

	filter := bson.M{"eventId": bson.M{"$in": eventIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make(map[string]*entity.Disruption)
	for cursor.Next(ctx) {
		var disruption entity.Disruption
		if err := cursor.Decode(&disruption); err != nil {
			continue
		}
		result[disruption.EventID] = &disruption
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// FindUnprocessed finds unprocessed disruptions (PENDING status or empty)
func (r *MongoDisruptionRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Disruption, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "reportedAt", Value: 1}}, // Process oldest first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var disruptions []*entity.Disruption
	if err := cursor.All(ctx, &disruptions); err != nil {
		return nil, err
	}

	return disruptions, nil
}

// GetLastReported gets the most recently reported disruption
func (r *MongoDisruptionRepository) GetLastReported(ctx context.Context) (*entity.Disruption, error) {
	var disruption entity.Disruption
	opts := options.FindOne().SetSort(bson.D{{Key: "reportedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&disruption)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &disruption, nil
}

// UpdateStatus updates just the status and started time
func (r *MongoDisruptionRepository) UpdateStatus(ctx context.Context, id string, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	// Only set processStartedAt when moving to PROCESSING
	if status == entity.StatusProcessing && !startedAt.IsZero() {
		update["$set"].(bson.M)["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id: %s", id)
	}

	return nil
}

// MarkAsProcessed marks a disruption as processed with full details
func (r *MongoDisruptionRepository) MarkAsProcessed(ctx context.Context, id, status, handlerType, errorDetail string) error {
	update := bson.M{
		"$set": bson.M{
			"processedAt":   time.Now(),
			"processStatus": status,
			"handlerType":   handlerType,
		},
	}

	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id: %s", id)
	}

	return nil
}

// ResetProcessing resets disruptions stuck in PROCESSING state back to PENDING
func (r *MongoDisruptionRepository) ResetProcessing(ctx context.Context) error {
	// Find disruptions that have been processing for more than 5 minutes
	staleTime := time.Now().Add(-5 * time.Minute)

	filter := bson.M{
		"processStatus": entity.StatusProcessing,
		"$or": []bson.M{
			{"processStartedAt": bson.M{"$lt": staleTime}},
			{"processStartedAt": bson.M{"$exists": false}},
		},
	}

	update := bson.M{
		"$set": bson.M{
			"processStatus": entity.StatusPending,
			"errorDetail":   "Reset from stale PROCESSING state",
		},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}
