package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository struct handles database operations related to goals
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// CreateGoal creates a new goal in the database
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	goal.UpdatedAt = goal.CreatedAt

	if _, err := r.collection.InsertOne(ctx, goal); err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	logger.Log.WithField("goal_id", goal.ID).Debug("Goal created successfully")
	return nil
}

// GetGoalByID fetches a goal by its ID
func (r *GoalRepository) GetGoalByID(ctx context.Context, id string) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id).Error("Failed to find goal by ID")
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

// FindOpenGoals fetches the user's goals that can still receive activities of a category.
func (r *GoalRepository) FindOpenGoals(ctx context.Context, userID string, category models.GoalCategory, now time.Time) ([]models.Goal, error) {
	filter := bson.M{
		"user_id":      userID,
		"category":     category,
		"is_completed": false,
		"$or": bson.A{
			bson.M{"end_date": nil},
			bson.M{"end_date": bson.M{"$gt": now}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	return r.find(ctx, filter, opts)
}

// UpdateProgress writes the recomputed progress fields and returns the stored goal.
func (r *GoalRepository) UpdateProgress(ctx context.Context, id string, currentCount int, isCompleted bool, updatedAt time.Time) (*models.Goal, error) {
	update := bson.M{"$set": bson.M{
		"current_count": currentCount,
		"is_completed":  isCompleted,
		"updated_at":    updatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var goal models.Goal
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id).Error("Failed to update goal progress")
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}
	return &goal, nil
}

// ListUserGoals fetches every goal of a user
func (r *GoalRepository) ListUserGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *GoalRepository) ListGoalsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Goal, error) {
	filter := bson.M{
		"is_completed": false,
		"end_date":     bson.M{"$gt": from, "$lte": to},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *GoalRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Goal, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch goals")
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer cursor.Close(ctx)

	goals := []models.Goal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}
	return goals, nil
}
