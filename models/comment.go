package models

import (
	"time"

	"gorm.io/gorm"
)

// Author type discriminator values for a comment.
const (
	AuthorTypePatient   = "pat"
	AuthorTypeDietitian = "diet"
)

// A comment on a patient's post, written by either the patient or their
// dietitian. Author display names are resolved through the post's owning
// patient (and that patient's dietitian), not a separate user table.
type Comment struct {
	gorm.Model
	PostID uint `gorm:"index;not null"`

	AuthorType  string    `gorm:"size:4;not null"` // "pat" or "diet"
	AuthorID    uint      `gorm:"not null"`
	TimeStamp   time.Time `gorm:"not null"`
	CommentBody string    `gorm:"not null"`
	Edited      bool
}
