package repository

import (
	"context"
	"fmt"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoBatchSize bounds the number of upserts per BulkWrite call
const mongoBatchSize = 500

// mongoFlightRecord is the stored document: the record's own fields plus its key
type mongoFlightRecord struct {
	entity.FlightRecord `bson:",inline"`
	RecordKey           string    `bson:"recordKey"`
	UpdatedAt           time.Time `bson:"updatedAt"`
}

// MongoFlightRecordRepository implements FlightRecordRepository on a MongoDB collection
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(ctx context.Context, db *mongo.Database) (repository.FlightRecordRepository, error) {
	collection := db.Collection("flight_schedules")

	// Create unique index on recordKey
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"recordKey": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create recordKey index: %w", err)
	}

	// Create index on originCity for queries
	originIndex := mongo.IndexModel{
		Keys: bson.M{"originCity": 1},
	}
	if _, err := collection.Indexes().CreateOne(ctx, originIndex); err != nil {
		return nil, fmt.Errorf("failed to create originCity index: %w", err)
	}

	return &MongoFlightRecordRepository{
		collection: collection,
	}, nil
}

func (r *MongoFlightRecordRepository) Name() string {
	return "mongodb"
}

// SaveAll upserts every record by its key
func (r *MongoFlightRecordRepository) SaveAll(ctx context.Context, records []entity.FlightRecord) error {
	now := time.Now()

	for start := 0; start < len(records); start += mongoBatchSize {
		end := min(start+mongoBatchSize, len(records))

		models := make([]mongo.WriteModel, 0, end-start)
		for _, record := range records[start:end] {
			doc := mongoFlightRecord{
				FlightRecord: record,
				RecordKey:    record.Key(),
				UpdatedAt:    now,
			}
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"recordKey": doc.RecordKey}).
				SetUpdate(bson.M{
					"$set":         doc,
					"$setOnInsert": bson.M{"createdAt": now},
				}).
				SetUpsert(true))
		}

		opts := options.BulkWrite().SetOrdered(false)
		if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
			return fmt.Errorf("failed to upsert flight records: %w", err)
		}
	}

	return nil
}
