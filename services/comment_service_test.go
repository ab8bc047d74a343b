package services

import (
	"testing"

	"github.com/emilycheera/nourish/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentAsPatient(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)
	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)

	viewer := Viewer{Role: RolePatient, PatientID: patient.ID}

	comment, err := NewCommentService(db).AddComment(post.ID, viewer, "that felt good")
	require.NoError(t, err)

	assert.Equal(t, models.AuthorTypePatient, comment.AuthorType)
	assert.Equal(t, patient.ID, comment.AuthorID)
	assert.False(t, comment.Edited)
}

func TestAddCommentAsDietitian(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)
	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)

	viewer := Viewer{Role: RoleDietitian, DietitianID: dietitian.ID}

	comment, err := NewCommentService(db).AddComment(post.ID, viewer, "great progress")
	require.NoError(t, err)

	assert.Equal(t, models.AuthorTypeDietitian, comment.AuthorType)
	assert.Equal(t, dietitian.ID, comment.AuthorID)
}

func TestAddCommentPostNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewCommentService(db).AddComment(9999, Viewer{Role: RolePatient, PatientID: 1}, "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestEditCommentSetsEditedFlag(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)
	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)
	comment := seedComment(t, db, post.ID, models.AuthorTypePatient, patient.ID, "typo", mustTime(t, "2020-02-20T09:00:00"))

	edited, err := NewCommentService(db).EditComment(comment.ID, "fixed")
	require.NoError(t, err)

	assert.Equal(t, "fixed", edited.CommentBody)
	assert.True(t, edited.Edited)
}

func TestEditCommentNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewCommentService(db).EditComment(9999, "fixed")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewCommentService(db).DeleteComment(9999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)
	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)
	comment := seedComment(t, db, post.ID, models.AuthorTypePatient, patient.ID, "bye", mustTime(t, "2020-02-20T09:00:00"))

	require.NoError(t, NewCommentService(db).DeleteComment(comment.ID))

	var count int64
	db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCommentPayloadResolvesAuthorThroughPatient(t *testing.T) {
	db := newTestDB(t)
	dietitian := seedDietitian(t, db)
	patient := seedPatient(t, db, dietitian.ID)
	post := seedPost(t, db, patient.ID, mustTime(t, "2020-02-20T08:00:00"), nil, nil, nil)

	svc := NewCommentService(db)

	patComment := seedComment(t, db, post.ID, models.AuthorTypePatient, patient.ID, "mine", mustTime(t, "2020-02-20T09:00:00"))
	dietComment := seedComment(t, db, post.ID, models.AuthorTypeDietitian, dietitian.ID, "theirs", mustTime(t, "2020-02-20T10:00:00"))

	patPayload, err := svc.Payload(patComment)
	require.NoError(t, err)
	assert.Equal(t, patient.Fname, patPayload.User.Fname)
	assert.Equal(t, patient.Lname, patPayload.User.Lname)
	assert.Equal(t, "mine", patPayload.Comment.CommentBody)

	dietPayload, err := svc.Payload(dietComment)
	require.NoError(t, err)
	assert.Equal(t, dietitian.Fname, dietPayload.User.Fname)
	assert.Equal(t, dietitian.Lname, dietPayload.User.Lname)
}

func TestProjectCommentIsAuthorTruthTable(t *testing.T) {
	patient := models.Patient{Fname: "Pat", Lname: "Patient"}
	patient.Dietitian = models.Dietitian{Fname: "Dana", Lname: "Dietitian"}

	dietComment := models.Comment{AuthorType: models.AuthorTypeDietitian, CommentBody: "note"}

	asDietitian := projectComment(dietComment, patient, Viewer{Role: RoleDietitian})
	assert.True(t, asDietitian.IsAuthor)
	assert.Equal(t, "Dana", asDietitian.AuthorFname)

	asPatient := projectComment(dietComment, patient, Viewer{Role: RolePatient})
	assert.False(t, asPatient.IsAuthor)
}
