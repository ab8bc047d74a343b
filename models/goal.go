package models

import (
	"time"

	"gorm.io/gorm"
)

// A goal written by a dietitian for a particular patient. A patient's goals
// are ordered by TimeStamp; the most recent one is "current".
type Goal struct {
	gorm.Model
	PatientID uint `gorm:"index;not null"`

	TimeStamp time.Time `gorm:"not null"`
	GoalBody  string    `gorm:"not null"`
	Edited    bool
}
