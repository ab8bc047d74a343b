package services

import (
	"testing"

	"github.com/emilycheera/nourish/models"
	"github.com/emilycheera/nourish/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePatientHashesPasswordAndDefaultsVisibility(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)

	patient, err := NewPatientService(db).CreatePatient(dietitian.ID, PatientInput{
		Fname:    "Jess",
		Lname:    "Jones",
		Email:    "jess@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", patient.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", patient.Password))
	assert.True(t, patient.HungerVisible)
	assert.True(t, patient.FullnessVisible)
	assert.True(t, patient.SatisfactionVisible)
}

func TestCreatePatientRejectsMalformedBirthdate(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)

	_, err := NewPatientService(db).CreatePatient(dietitian.ID, PatientInput{
		Fname:     "Jess",
		Lname:     "Jones",
		Email:     "jess2@example.com",
		Password:  "secret123",
		Birthdate: "02/20/1990",
	})
	assert.Error(t, err)
}

func TestUpdatePostForm(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	svc := NewPatientService(db)

	require.NoError(t, svc.UpdatePostForm(patient.ID, true, false, true))

	updated, err := svc.GetPatient(patient.ID)
	require.NoError(t, err)
	assert.True(t, updated.HungerVisible)
	assert.False(t, updated.FullnessVisible)
	assert.True(t, updated.SatisfactionVisible)
}

func TestUpdatePostFormPatientNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewPatientService(db).UpdatePostForm(9999, true, true, true)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDietitianPatientsAlphabetizedByLname(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)

	for _, lname := range []string{"Zimmer", "Abbott", "Moore"} {
		patient := &models.Patient{
			DietitianID: dietitian.ID,
			Fname:       "Test",
			Lname:       lname,
			Email:       lname + "@example.com",
			Password:    "hashed",
		}
		require.NoError(t, db.Create(patient).Error)
	}

	patients, err := NewPatientService(db).DietitianPatients(dietitian.ID)
	require.NoError(t, err)

	require.Len(t, patients, 3)
	assert.Equal(t, "Abbott", patients[0].Lname)
	assert.Equal(t, "Moore", patients[1].Lname)
	assert.Equal(t, "Zimmer", patients[2].Lname)
}

func TestDeletePatientCascades(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)

	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)
	seedComment(t, db, post.ID, models.AuthorTypeDietitian, dietitian.ID, "note", mustTime(t, "2020-02-20T09:00:00"))
	seedGoal(t, db, patient.ID, "goal", mustTime(t, "2020-02-01T09:00:00"))

	require.NoError(t, NewPatientService(db).DeletePatient(patient.ID))

	var posts, goals, comments int64
	db.Model(&models.Post{}).Where("patient_id = ?", patient.ID).Count(&posts)
	db.Model(&models.Goal{}).Where("patient_id = ?", patient.ID).Count(&goals)
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, goals)
	assert.Zero(t, comments)
}

func TestAuthenticatePatient(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	dietitian := seedDietitian(t, db)

	_, err := NewPatientService(db).CreatePatient(dietitian.ID, PatientInput{
		Fname:    "Jess",
		Lname:    "Jones",
		Email:    "login@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	svc := NewAuthService(db)

	token, err := svc.AuthenticatePatient("login@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.AuthenticatePatient("login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticatePatient("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
