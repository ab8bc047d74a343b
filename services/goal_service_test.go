package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/emilycheera/nourish/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedGoal(t *testing.T, db *gorm.DB, patientID uint, body string, timeStamp time.Time) *models.Goal {
	t.Helper()
	goal := &models.Goal{PatientID: patientID, TimeStamp: timeStamp, GoalBody: body}
	require.NoError(t, db.Create(goal).Error)
	return goal
}

func TestAddGoalWithNoHistory(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	update, err := NewGoalService(db).AddGoal(patient.ID, "Eat three meals a day")
	require.NoError(t, err)

	assert.Equal(t, "Eat three meals a day", update.CurrentGoal.GoalBody)
	assert.False(t, update.CurrentGoal.Edited)

	// No prior goal: the past-goal key must be absent, never null-valued.
	assert.Nil(t, update.PastGoal)
}

func TestAddGoalDemotesPreviousGoal(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	previous := seedGoal(t, db, patient.ID, "Old goal", mustTime(t, "2020-02-01T09:00:00"))

	update, err := NewGoalService(db).AddGoal(patient.ID, "New goal")
	require.NoError(t, err)

	assert.Equal(t, "New goal", update.CurrentGoal.GoalBody)
	require.NotNil(t, update.PastGoal)
	assert.Equal(t, previous.ID, update.PastGoal.GoalID)
	assert.Equal(t, "Old goal", update.PastGoal.GoalBody)
}

func TestEditGoalSetsEditedFlag(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	goal := seedGoal(t, db, patient.ID, "Original", mustTime(t, "2020-02-01T09:00:00"))

	update, err := NewGoalService(db).EditGoal(goal.ID, "Revised")
	require.NoError(t, err)

	assert.Equal(t, goal.ID, update.CurrentGoal.GoalID)
	assert.Equal(t, "Revised", update.CurrentGoal.GoalBody)
	assert.True(t, update.CurrentGoal.Edited)
	assert.Nil(t, update.PastGoal)
}

func TestEditGoalNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewGoalService(db).EditGoal(9999, "Revised")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestDeleteGoalNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewGoalService(db).DeleteGoal(9999)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestDeleteGoal(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	goal := seedGoal(t, db, patient.ID, "Doomed", mustTime(t, "2020-02-01T09:00:00"))

	require.NoError(t, NewGoalService(db).DeleteGoal(goal.ID))

	var count int64
	db.Model(&models.Goal{}).Where("id = ?", goal.ID).Count(&count)
	assert.Zero(t, count)
}

func TestPatientGoalsEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	history, err := NewGoalService(db).PatientGoals(patient.ID, 1, 10)
	require.NoError(t, err)

	assert.Nil(t, history.CurrentGoal)
	assert.Empty(t, history.PastGoals)
	assert.Zero(t, history.Total)
}

func TestPatientGoalsPagination(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	base := mustTime(t, "2020-01-01T09:00:00")
	for i := 0; i < 12; i++ {
		seedGoal(t, db, patient.ID, fmt.Sprintf("Goal %d", i), base.AddDate(0, 0, i))
	}

	svc := NewGoalService(db)

	first, err := svc.PatientGoals(patient.ID, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, first.CurrentGoal)
	assert.Equal(t, "Goal 11", first.CurrentGoal.GoalBody)
	assert.Equal(t, int64(12), first.Total)
	// Page one drops the current goal from the past list.
	require.Len(t, first.PastGoals, 9)
	assert.Equal(t, "Goal 10", first.PastGoals[0].GoalBody)

	second, err := svc.PatientGoals(patient.ID, 2, 10)
	require.NoError(t, err)
	require.NotNil(t, second.CurrentGoal)
	// Later pages keep their full contents.
	require.Len(t, second.PastGoals, 2)
	assert.Equal(t, "Goal 1", second.PastGoals[0].GoalBody)
	assert.Equal(t, "Goal 0", second.PastGoals[1].GoalBody)
}
