package services

import (
	"time"

	"github.com/kthiza/protein-tracking-app/config"
	"github.com/kthiza/protein-tracking-app/models"
	"github.com/kthiza/protein-tracking-app/utils"
)

func GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateWeight stores the new weight and recalculates the daily protein goal.
func UpdateWeight(user *models.User, weightKg float64, dash *DashboardService) error {
	goal, err := utils.CalculateProteinGoal(weightKg)
	if err != nil {
		return err
	}

	now := time.Now()
	user.WeightKg = weightKg
	user.ProteinGoal = goal
	user.LastWeightUpdate = &now

	if err := config.DB.Save(user).Error; err != nil {
		return err
	}
	dash.Invalidate(user.ID, now)
	return nil
}
