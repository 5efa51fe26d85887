package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Meal is one logged upload. The estimate is a snapshot: corrections are new
// meals, never edits.
type Meal struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	ImageURL      string // S3 location of the photo
	FoodItems     string `gorm:"type:text"` // JSON-encoded []string
	TotalProtein  float64
	TotalCalories float64
}

// Foods decodes the stored food list.
func (m *Meal) Foods() []string {
	var foods []string
	if err := json.Unmarshal([]byte(m.FoodItems), &foods); err != nil {
		return nil
	}
	return foods
}

// SetFoods encodes the food list for storage.
func (m *Meal) SetFoods(foods []string) error {
	data, err := json.Marshal(foods)
	if err != nil {
		return err
	}
	m.FoodItems = string(data)
	return nil
}
