package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emilycheera/nourish/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test. cache=shared keeps the
// database alive across the connections gorm pools.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Dietitian{},
		&models.Patient{},
		&models.Post{},
		&models.Goal{},
		&models.Comment{},
	)
	require.NoError(t, err)

	return db
}

func seedDietitian(t *testing.T, db *gorm.DB) *models.Dietitian {
	t.Helper()
	dietitian := &models.Dietitian{
		Fname:    "Dana",
		Lname:    "Dietitian",
		Email:    fmt.Sprintf("dana%d@example.com", atomic.AddInt64(&testDBSeq, 1)),
		Password: "hashed",
	}
	require.NoError(t, db.Create(dietitian).Error)
	return dietitian
}

func seedPatient(t *testing.T, db *gorm.DB, dietitianID uint) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		DietitianID: dietitianID,
		Fname:       "Pat",
		Lname:       "Patient",
		Email:       fmt.Sprintf("pat%d@example.com", atomic.AddInt64(&testDBSeq, 1)),
		Password:    "hashed",
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func seedPost(t *testing.T, db *gorm.DB, patientID uint, mealTime time.Time, hunger, fullness, satisfaction *int) *models.Post {
	t.Helper()
	post := &models.Post{
		PatientID:    patientID,
		TimeStamp:    mealTime,
		MealTime:     mealTime,
		Hunger:       hunger,
		Fullness:     fullness,
		Satisfaction: satisfaction,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func intPtr(v int) *int { return &v }

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05", value)
	require.NoError(t, err)
	return parsed
}
