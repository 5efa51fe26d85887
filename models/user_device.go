package models

import "gorm.io/gorm"

// UserDevice holds one SNS push endpoint per registered device.
type UserDevice struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Platform    string // "android" | "ios"
	TokenHash   string `gorm:"index"`
	EndpointARN string `gorm:"not null"`
	Enabled     bool   `gorm:"default:true"`
}
