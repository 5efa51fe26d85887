package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username          string `gorm:"uniqueIndex;not null"`
	Email             string `gorm:"uniqueIndex;not null"`
	Password          string `gorm:"not null"`
	WeightKg          float64
	ProteinGoal       float64 // g/day, derived from weight
	LastWeightUpdate  *time.Time
	EmailVerified     bool
	VerificationToken string `gorm:"index"`
}
