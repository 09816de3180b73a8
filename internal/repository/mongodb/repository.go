package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/ingest"
)

const (
	batchesCollection = "batches"
	reportsCollection = "dashboard_reports"
)

// Repository defines the batch store operations the services rely on.
type Repository interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	GetBatch(ctx context.Context, id string) (models.Batch, error)
	UpdateBatchStatus(ctx context.Context, id string, status models.BatchStatus) error
	SaveDashboardReport(ctx context.Context, report models.DashboardReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// ListBatches returns every batch in insertion order. Batch IDs are
// push-style keys, so ordering by _id preserves creation order.
func (r *MongoDBRepository) ListBatches(ctx context.Context) ([]models.Batch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection(batchesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}

	var docs []models.BatchDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode batches: %w", err)
	}

	batches := make([]models.Batch, 0, len(docs))
	for _, doc := range docs {
		batches = append(batches, ingest.Batch(doc))
	}
	return batches, nil
}

// GetBatch loads a single batch by ID.
func (r *MongoDBRepository) GetBatch(ctx context.Context, id string) (models.Batch, error) {
	var doc models.BatchDocument
	err := r.collection(batchesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Batch{}, models.ErrBatchNotFound
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("failed to load batch %s: %w", id, err)
	}
	return ingest.Batch(doc), nil
}

// UpdateBatchStatus transitions a batch to status.
func (r *MongoDBRepository) UpdateBatchStatus(ctx context.Context, id string, status models.BatchStatus) error {
	res, err := r.collection(batchesCollection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(status)}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to update batch %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrBatchNotFound
	}
	return nil
}

// SaveDashboardReport stores a daily dashboard snapshot.
func (r *MongoDBRepository) SaveDashboardReport(ctx context.Context, report models.DashboardReport) error {
	_, err := r.collection(reportsCollection).InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert dashboard report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
