package models

import (
	"gorm.io/gorm"
)

// A dietitian user. Owns zero or more patients.
type Dietitian struct {
	gorm.Model
	Fname         string `gorm:"size:50;not null"`
	Lname         string `gorm:"size:50;not null"`
	Email         string `gorm:"size:120;uniqueIndex;not null"`
	Password      string `gorm:"not null"` // bcrypt hash
	StreetAddress string `gorm:"size:100"`
	City          string `gorm:"size:40"`
	State         string `gorm:"size:2"`
	Zipcode       string `gorm:"size:11"`

	Patients []Patient
}
