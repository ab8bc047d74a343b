package models

import (
	"time"

	"gorm.io/gorm"
)

// A patient user. Belongs to exactly one dietitian (assigned at creation,
// reassignment not modeled).
type Patient struct {
	gorm.Model
	DietitianID   uint `gorm:"index;not null"`
	Dietitian     Dietitian
	Fname         string `gorm:"size:50;not null"`
	Lname         string `gorm:"size:50;not null"`
	Email         string `gorm:"size:120;uniqueIndex;not null"`
	Password      string `gorm:"not null"` // bcrypt hash
	StreetAddress string `gorm:"size:100"`
	City          string `gorm:"size:40"`
	State         string `gorm:"size:2"`
	Zipcode       string `gorm:"size:11"`
	Phone         string `gorm:"size:15"`
	Birthdate     *time.Time

	// Which rating fields the dietitian shows on this patient's post form.
	HungerVisible       bool `gorm:"default:true"`
	FullnessVisible     bool `gorm:"default:true"`
	SatisfactionVisible bool `gorm:"default:true"`

	Posts []Post
	Goals []Goal
}
