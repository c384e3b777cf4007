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

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type loggerFixture struct {
	activities *memActivities
	goals      *memGoals
	users      *memUsers
	tracker    *GoalService
	logger     *ActivityLogger
}

func newLoggerFixture(userIDs ...string) *loggerFixture {
	f := &loggerFixture{
		activities: &memActivities{},
		goals:      newMemGoals(),
		users:      newMemUsers(userIDs...),
	}
	f.tracker = NewGoalService(f.goals, f.activities)
	f.tracker.now = func() time.Time { return fixedNow }
	f.logger = NewActivityLogger(f.activities, f.goals, f.users, f.tracker)
	f.logger.now = func() time.Time { return fixedNow }
	return f
}

func (f *loggerFixture) addGoal(t *testing.T, g models.Goal) *models.Goal {
	t.Helper()
	require.NoError(t, f.goals.CreateGoal(context.Background(), &g))
	return &g
}

func TestLogActivity_FansOutToEveryOpenGoal(t *testing.T) {
	f := newLoggerFixture("u-1")
	g1 := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 5})
	g2 := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryActivity, TargetCount: 3})
	f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryDPV, TargetCount: 3})

	first, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{
		Type:        models.ActivityCall,
		Description: "Called owner",
	})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.GoalID)
	assert.Equal(t, g1.ID, *first.GoalID)
	assert.Equal(t, 1, first.Points)
	assert.Equal(t, fixedNow, first.Timestamp)

	rows := f.activities.all()
	require.Len(t, rows, 2)
	assert.Equal(t, g1.ID, *rows[0].GoalID)
	assert.Equal(t, g2.ID, *rows[1].GoalID)

	for _, id := range []string{g1.ID, g2.ID} {
		g, err := f.goals.GetGoalByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, g.CurrentCount)
	}
}

func TestLogActivity_NoEligibleGoalWritesOneUncountedRow(t *testing.T) {
	f := newLoggerFixture("u-1")
	f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryNews, TargetCount: 5})
	f.addGoal(t, models.Goal{UserID: "u-2", Category: models.CategoryActivity, TargetCount: 5})

	activity, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityVisit})
	require.NoError(t, err)
	require.NotNil(t, activity)
	assert.Nil(t, activity.GoalID)
	assert.Len(t, f.activities.all(), 1)
}

func TestLogActivity_ExcludesExpiredAndCompletedGoals(t *testing.T) {
	f := newLoggerFixture("u-1")
	past := fixedNow.Add(-time.Minute)
	future := fixedNow.Add(time.Hour)
	f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryDPV, TargetCount: 5, EndDate: &past})
	f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryDPV, TargetCount: 1, CurrentCount: 1, IsCompleted: true})
	open := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryDPV, TargetCount: 5, EndDate: &future})

	_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{
		Type:     models.ActivityValuation,
		Metadata: models.NewValuationMetadata(180000, "EUR"),
	})
	require.NoError(t, err)

	rows := f.activities.all()
	require.Len(t, rows, 1)
	assert.Equal(t, open.ID, *rows[0].GoalID)
}

func TestLogActivity_ExplicitGoalIsSoleTarget(t *testing.T) {
	f := newLoggerFixture("u-1")
	f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryGeneral, TargetCount: 5})
	explicit := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryNews, TargetCount: 1})

	activity, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{
		Type:   models.ActivityOther,
		GoalID: &explicit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit.ID, *activity.GoalID)
	assert.Len(t, f.activities.all(), 1)

	g, err := f.goals.GetGoalByID(context.Background(), explicit.ID)
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)
}

func TestLogActivity_ExplicitGoalMustExistAndBelongToActor(t *testing.T) {
	f := newLoggerFixture("u-1")
	foreign := f.addGoal(t, models.Goal{UserID: "u-2", Category: models.CategoryGeneral, TargetCount: 5})

	for _, id := range []string{"missing", foreign.ID} {
		goalID := id
		_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityOther, GoalID: &goalID})
		var logErr *ActivityLoggerError
		require.ErrorAs(t, err, &logErr)
		assert.ErrorIs(t, err, ErrGoalNotFound)
	}
	assert.Empty(t, f.activities.all())
}

func TestLogActivity_UnresolvedActorIsNoop(t *testing.T) {
	f := newLoggerFixture("u-1")

	for _, actor := range []string{"", "  ", "ghost"} {
		activity, err := f.logger.LogActivity(context.Background(), actor, LogActivityInput{Type: models.ActivityCall})
		assert.NoError(t, err)
		assert.Nil(t, activity)
	}
	assert.Empty(t, f.activities.all())
}

func TestLogActivity_WrapsPersistenceFailure(t *testing.T) {
	f := newLoggerFixture("u-1")
	cause := errors.New("connection reset")
	f.activities.createErr = cause

	activity, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityCall})
	assert.Nil(t, activity)

	var logErr *ActivityLoggerError
	require.ErrorAs(t, err, &logErr)
	assert.ErrorIs(t, err, cause)
}

func TestLogActivity_UserLookupFailureIsWrapped(t *testing.T) {
	f := newLoggerFixture("u-1")
	f.users.err = errors.New("timeout")

	_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityCall})
	var logErr *ActivityLoggerError
	assert.ErrorAs(t, err, &logErr)
}

func TestLogActivity_RejectsInvalidInput(t *testing.T) {
	f := newLoggerFixture("u-1")

	_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: "TELEPORT"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{
		Type:     models.ActivityCall,
		Metadata: &models.Metadata{Kind: models.MetadataStatus},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityCall, Points: -2})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, f.activities.all())
}

func TestLogActivity_CountMatchesRowsAfterManyCalls(t *testing.T) {
	f := newLoggerFixture("u-1")
	goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryAddedPhones, TargetCount: 4})

	for i := 0; i < 6; i++ {
		_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityPhoneAdded})
		require.NoError(t, err)
	}

	g, err := f.goals.GetGoalByID(context.Background(), goal.ID)
	require.NoError(t, err)
	n, err := f.activities.CountByGoal(context.Background(), goal.ID)
	require.NoError(t, err)
	// completion closes the goal, so later calls stay uncounted
	assert.Equal(t, 4, n)
	assert.Equal(t, n, g.CurrentCount)
	assert.True(t, g.IsCompleted)
	assert.Len(t, f.activities.all(), 6)
}

func TestLogActivity_NotifiesListeners(t *testing.T) {
	f := newLoggerFixture("u-1")
	var notified []string
	f.logger.OnProgress(func(userID string) { notified = append(notified, userID) })

	_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityCall})
	require.NoError(t, err)
	_, err = f.logger.LogActivity(context.Background(), "ghost", LogActivityInput{Type: models.ActivityCall})
	require.NoError(t, err)

	assert.Equal(t, []string{"u-1"}, notified)
}

func TestDeleteActivity_RecomputesGoal(t *testing.T) {
	f := newLoggerFixture("u-1")
	goal := f.addGoal(t, models.Goal{UserID: "u-1", Category: models.CategoryNews, TargetCount: 2})

	var created []*models.Activity
	for i := 0; i < 2; i++ {
		a, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityNewsItem})
		require.NoError(t, err)
		created = append(created, a)
	}
	g, _ := f.goals.GetGoalByID(context.Background(), goal.ID)
	require.True(t, g.IsCompleted)

	require.NoError(t, f.logger.DeleteActivity(context.Background(), created[0].ID))

	g, _ = f.goals.GetGoalByID(context.Background(), goal.ID)
	assert.Equal(t, 1, g.CurrentCount)
	assert.False(t, g.IsCompleted)

	assert.ErrorIs(t, f.logger.DeleteActivity(context.Background(), created[0].ID), ErrNotFound)
}

func TestListRecent_ClampsLimit(t *testing.T) {
	f := newLoggerFixture("u-1")
	for i := 0; i < 25; i++ {
		_, err := f.logger.LogActivity(context.Background(), "u-1", LogActivityInput{Type: models.ActivityOther})
		require.NoError(t, err)
	}

	recent, err := f.logger.ListRecent(context.Background(), "u-1", 0)
	require.NoError(t, err)
	assert.Len(t, recent, defaultActivityLimit)

	recent, err = f.logger.ListRecent(context.Background(), "u-1", 1000)
	require.NoError(t, err)
	assert.Len(t, recent, 25)
}
