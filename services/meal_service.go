package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/kthiza/protein-tracking-app/config"
	"github.com/kthiza/protein-tracking-app/models"
	"github.com/kthiza/protein-tracking-app/nutrition"
	"github.com/kthiza/protein-tracking-app/utils"
)

// ErrNoFoodDetected is surfaced when neither detection nor manual entry
// produced any food. The upload is rejected; nothing is persisted.
var ErrNoFoodDetected = nutrition.ErrNoFoodDetected

type MealService struct {
	vision   *VisionService // nil when the collaborator is unavailable
	pipeline *nutrition.Pipeline
	dash     *DashboardService
}

func NewMealService(vision *VisionService, pipeline *nutrition.Pipeline, dash *DashboardService) *MealService {
	return &MealService{vision: vision, pipeline: pipeline, dash: dash}
}

type LogMealRequest struct {
	Filename    string
	Image       []byte
	ContentType string
	ManualFoods []string // free-text foods typed by the user
	UseAI       bool
}

// LogMeal runs the full estimation pass for one upload and persists the
// result. Vision failures degrade to the filename heuristic and then to
// manual entry; only a completely empty food list rejects the upload.
func (s *MealService) LogMeal(ctx context.Context, user *models.User, req LogMealRequest) (*models.Meal, error) {
	foods := s.resolveFoods(ctx, req)
	estimate, err := s.pipeline.EstimateFoods(foods)
	if err != nil {
		return nil, err
	}

	imageURL, err := utils.UploadMealImage(ctx, user.ID, req.Filename, req.Image, req.ContentType)
	if err != nil {
		// The estimate is still worth keeping; the photo is not load-bearing.
		log.Printf("meal image upload failed for user %d: %v", user.ID, err)
	}

	meal := &models.Meal{
		UserID:        user.ID,
		ImageURL:      imageURL,
		TotalProtein:  estimate.TotalProtein,
		TotalCalories: estimate.TotalCalories,
	}
	if err := meal.SetFoods(estimate.Foods); err != nil {
		return nil, err
	}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	s.dash.Invalidate(user.ID, time.Now())
	s.checkGoalReached(user, meal.TotalProtein)
	return meal, nil
}

// resolveFoods merges vision detection with manual entry into one list.
func (s *MealService) resolveFoods(ctx context.Context, req LogMealRequest) []string {
	var foods []string

	if req.UseAI && len(req.Image) > 0 {
		var detections nutrition.Detections
		if s.vision == nil {
			detections.Labels = FilenameFallback(req.Filename)
		} else if d, err := s.vision.DetectFood(ctx, req.Image); err != nil {
			log.Printf("vision detection failed: %v", err)
			detections.Labels = FilenameFallback(req.Filename)
		} else {
			detections = d
		}
		foods = s.pipeline.ResolveFoods(detections)
	}

	seen := make(map[string]bool, len(foods))
	for _, f := range foods {
		seen[f] = true
	}
	for _, raw := range req.ManualFoods {
		raw = strings.ToLower(strings.TrimSpace(raw))
		if raw == "" {
			continue
		}
		matched := s.pipeline.MatchFood(raw)
		if len(matched) == 0 {
			// Keep the user's own wording; the aggregator will estimate it.
			matched = []string{raw}
		}
		for _, name := range matched {
			if !seen[name] {
				seen[name] = true
				foods = append(foods, name)
			}
		}
	}
	return foods
}

// checkGoalReached emits a realtime + push alert when this meal is the one
// that crossed today's protein goal.
func (s *MealService) checkGoalReached(user *models.User, mealProtein float64) {
	if user.ProteinGoal <= 0 {
		return
	}
	today, err := s.dash.todayTotals(user.ID)
	if err != nil {
		return
	}
	if today.TotalProtein >= user.ProteinGoal && today.TotalProtein-mealProtein < user.ProteinGoal {
		EmitGoalReached(user.ID, today.TotalProtein, user.ProteinGoal)
	}
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	res := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("meal not found")
	}
	s.dash.Invalidate(userID, time.Now())
	return nil
}
