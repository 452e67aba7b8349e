// internal/interface/repository/recovery_log_repo.go
package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecoveryLogRepository implements the RecoveryLogRepository interface
type MongoRecoveryLogRepository struct {
	collection *mongo.Collection
}

// NewMongoRecoveryLogRepository creates a new MongoDB recovery log repository
func NewMongoRecoveryLogRepository(db *mongo.Database) repository.RecoveryLogRepository {
	collection := db.Collection("recoveryLog")

	ctx := context.Background()

	flightIDIndex := mongo.IndexModel{
		Keys: bson.M{"flightId": 1},
	}

	disruptionIDIndex := mongo.IndexModel{
		Keys: bson.M{"disruptionId": 1},
	}

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		flightIDIndex,
		disruptionIDIndex,
		createdAtIndex,
	})

	return &MongoRecoveryLogRepository{
		collection: collection,
	}
}

// Save saves a recovery result to MongoDB
func (r *MongoRecoveryLogRepository) Save(ctx context.Context, result *entity.RecoveryResult) error {
	if result.ID == "" {
		result.ID = primitive.NewObjectID().Hex()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// FindByFlight finds recovery results for a flight, most recent first
func (r *MongoRecoveryLogRepository) FindByFlight(ctx context.Context, flightID string, limit int) ([]*entity.RecoveryResult, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"flightId": flightID}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*entity.RecoveryResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// FindByDisruptionID finds the recovery result for a disruption
func (r *MongoRecoveryLogRepository) FindByDisruptionID(ctx context.Context, disruptionID string) (*entity.RecoveryResult, error) {
	var result entity.RecoveryResult
	err := r.collection.FindOne(ctx, bson.M{"disruptionId": disruptionID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
