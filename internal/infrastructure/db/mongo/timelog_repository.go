package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

type TimeLogRepository struct {
	col *mongo.Collection
}

func NewTimeLogRepository(db *mongo.Database) *TimeLogRepository {
	return &TimeLogRepository{col: db.Collection(collectionTimeLogs)}
}

// Create inserts a new time log document.
func (r *TimeLogRepository) Create(ctx context.Context, l *domain.TimeLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	return err
}

// FindByID retrieves a time log scoped to its owner.
func (r *TimeLogRepository) FindByID(ctx context.Context, id, userID string) (*domain.TimeLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.TimeLog
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimeLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Update replaces the time log document.
func (r *TimeLogRepository) Update(ctx context.Context, l *domain.TimeLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID, "user_id": l.UserID}, l)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrTimeLogNotFound
	}
	return nil
}

// Delete removes a single time log scoped to its owner.
func (r *TimeLogRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTimeLogNotFound
	}
	return nil
}

// List returns all time logs belonging to a user.
func (r *TimeLogRepository) List(ctx context.Context, userID string) ([]*domain.TimeLog, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListByTasks returns the user's time logs for the given task set.
func (r *TimeLogRepository) ListByTasks(ctx context.Context, userID string, taskIDs []string) ([]*domain.TimeLog, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"user_id": userID, "task_id": bson.M{"$in": taskIDs}})
}

func (r *TimeLogRepository) find(ctx context.Context, filter bson.M) ([]*domain.TimeLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*domain.TimeLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureIndexes creates necessary indexes on the time_logs collection.
func (r *TimeLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "task_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
