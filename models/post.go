package models

import (
	"time"

	"gorm.io/gorm"
)

// A meal post made by a patient. TimeStamp is the immutable creation time;
// MealTime is caller-supplied and may be edited. The three rating fields are
// independently nullable.
type Post struct {
	gorm.Model
	PatientID uint `gorm:"index;not null"`
	Patient   Patient

	TimeStamp    time.Time `gorm:"not null"`
	MealTime     time.Time `gorm:"index;not null"`
	ImgPath      string
	MealSetting  string `gorm:"size:200"`
	TEB          string // thoughts, emotions, behaviors
	Hunger       *int
	Fullness     *int
	Satisfaction *int
	MealNotes    string
	Edited       bool

	Comments []Comment
}
