package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivities(t *testing.T, store *memActivities, goalID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := goalID
		require.NoError(t, store.CreateActivity(context.Background(), &models.Activity{UserID: "u-1", GoalID: &id, Type: models.ActivityCall}))
	}
}

func TestRecomputeGoalProgress_IsIdempotent(t *testing.T) {
	f := newLoggerFixture("u-1")
	goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 10})
	seedActivities(t, f.activities, goal.ID, 3)

	first, err := f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
	require.NoError(t, err)
	second, err := f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, first.CurrentCount)
	assert.Equal(t, first.CurrentCount, second.CurrentCount)
	assert.Equal(t, first.IsCompleted, second.IsCompleted)
}

func TestRecomputeGoalProgress_OverwritesDriftedCount(t *testing.T) {
	f := newLoggerFixture("u-1")
	goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 10, CurrentCount: 42})
	seedActivities(t, f.activities, goal.ID, 2)

	g, err := f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, g.CurrentCount)
	assert.Equal(t, fixedNow, g.UpdatedAt)
}

func TestRecomputeGoalProgress_CompletionThreshold(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		completed bool
	}{
		{"one below target", 4, false},
		{"at target", 5, true},
		{"above target", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoggerFixture("u-1")
			goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 5})
			seedActivities(t, f.activities, goal.ID, tt.rows)

			g, err := f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, g.CurrentCount)
			assert.Equal(t, tt.completed, g.IsCompleted)
		})
	}
}

func TestRecomputeGoalProgress_MissingGoal(t *testing.T) {
	f := newLoggerFixture("u-1")

	_, err := f.tracker.RecomputeGoalProgress(context.Background(), "nope")
	var logErr *ActivityLoggerError
	require.ErrorAs(t, err, &logErr)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.Contains(t, err.Error(), "Goal not found")
}

func TestRecomputeGoalProgress_WrapsStoreErrors(t *testing.T) {
	f := newLoggerFixture("u-1")
	goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 5})

	countErr := errors.New("count failed")
	f.activities.countErr = countErr
	_, err := f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
	assert.ErrorIs(t, err, countErr)

	f.activities.countErr = nil
	updateErr := errors.New("update failed")
	f.goals.updateErr = updateErr
	_, err = f.tracker.RecomputeGoalProgress(context.Background(), goal.ID)
	var logErr *ActivityLoggerError
	require.ErrorAs(t, err, &logErr)
	assert.ErrorIs(t, err, updateErr)
}

func TestCreateGoal_Validation(t *testing.T) {
	f := newLoggerFixture("u-1")
	end := fixedNow.Add(-time.Hour)

	_, err := f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{Title: " ", Category: models.CategoryDPV, TargetCount: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{Title: "x", Category: "BOGUS", TargetCount: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{Title: "x", Category: models.CategoryDPV, TargetCount: 0})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{Title: "x", Category: models.CategoryDPV, TargetCount: 1, EndDate: &end})
	assert.ErrorIs(t, err, ErrValidation)

	goal, err := f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{Title: "Spring valuations", Category: models.CategoryDPV, TargetCount: 3})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, goal.StartDate)
	assert.Equal(t, 0, goal.CurrentCount)
	assert.False(t, goal.IsCompleted)
}

func TestCreateGoal_StoresDatesInUTC(t *testing.T) {
	f := newLoggerFixture("u-1")
	madrid := time.FixedZone("CEST", 2*60*60)
	start := fixedNow.In(madrid)
	end := fixedNow.Add(48 * time.Hour).In(madrid)

	goal, err := f.tracker.CreateGoal(context.Background(), "u-1", CreateGoalInput{
		Title: "Weekend visits", Category: models.CategoryActivity, TargetCount: 4,
		StartDate: &start, EndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, goal.StartDate.Location())
	require.NotNil(t, goal.EndDate)
	assert.Equal(t, time.UTC, goal.EndDate.Location())
	assert.True(t, goal.EndDate.Equal(end))

	stored, err := f.goals.GetGoalByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, stored.EndDate.Location())
}

func TestGetUserGoal_HidesForeignGoals(t *testing.T) {
	f := newLoggerFixture("u-1", "u-2")
	goal := f.addGoal(t, models.Goal{UserID: "u-2", Category: models.CategoryDPV, TargetCount: 1})

	_, err := f.tracker.GetUserGoal(context.Background(), "u-1", goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	got, err := f.tracker.GetUserGoal(context.Background(), "u-2", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.ID, got.ID)
}

func TestCreateDefaultGoals(t *testing.T) {
	f := newLoggerFixture("u-1")

	goals, err := f.tracker.CreateDefaultGoals(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, goals, len(models.DefaultGoalTemplates))

	for i, g := range goals {
		assert.Equal(t, models.DefaultGoalTemplates[i].Category, g.Category)
		assert.Equal(t, models.DefaultGoalTemplates[i].TargetCount, g.TargetCount)
		assert.Nil(t, g.EndDate)
		assert.Equal(t, "u-1", g.UserID)
	}
}
