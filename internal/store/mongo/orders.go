package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderArchiveRepository struct {
	collection *mongo.Collection
}

func NewOrderArchiveRepository(db *mongo.Database) *OrderArchiveRepository {
	return &OrderArchiveRepository{
		collection: db.Collection("orders"),
	}
}

func (r *OrderArchiveRepository) Create(ctx context.Context, order *domain.ArchivedOrder) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if order.ArchivedAt.IsZero() {
		order.ArchivedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to archive order: %w", err)
	}

	return nil
}

func (r *OrderArchiveRepository) ListRecent(ctx context.Context, limit int64) ([]domain.ArchivedOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "archived_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.ArchivedOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode recent orders: %w", err)
	}

	return orders, nil
}
