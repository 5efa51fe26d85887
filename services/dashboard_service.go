package services

import (
	"fmt"
	"time"

	"github.com/kthiza/protein-tracking-app/cache"
	"github.com/kthiza/protein-tracking-app/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardService(db *gorm.DB, c *cache.Cache) *DashboardService {
	return &DashboardService{db: db, cache: c}
}

type DayTotals struct {
	TotalProtein  float64 `json:"total_protein"`
	TotalCalories float64 `json:"total_calories"`
	MealsCount    int64   `json:"meals_count"`
}

type DashboardData struct {
	User struct {
		ID                uint       `json:"id"`
		Username          string     `json:"username"`
		WeightKg          float64    `json:"weight_kg"`
		ProteinGoal       float64    `json:"protein_goal"`
		LastWeightUpdate  *time.Time `json:"last_weight_update"`
		NeedsWeightUpdate bool       `json:"needs_weight_update"`
	} `json:"user"`

	Today struct {
		TotalProtein     float64 `json:"total_protein"`
		TotalCalories    float64 `json:"total_calories"`
		GoalProgress     float64 `json:"goal_progress"` // percent
		MealsCount       int64   `json:"meals_count"`
		RemainingProtein float64 `json:"remaining_protein"`
	} `json:"today"`

	Weekly struct {
		TotalProtein float64 `json:"total_protein"`
		AverageDaily float64 `json:"average_daily"`
		MealsCount   int64   `json:"meals_count"`
	} `json:"weekly"`

	Overall struct {
		TotalMeals          int64   `json:"total_meals"`
		AvgProteinPerMeal   float64 `json:"average_protein_per_meal"`
		TotalProteinTracked float64 `json:"total_protein_tracked"`
	} `json:"overall"`
}

// Dashboard serves the aggregate view, read-through from the LRU cache.
func (s *DashboardService) Dashboard(user *models.User) (*DashboardData, error) {
	key := s.key(user.ID, time.Now())
	if v, ok := s.cache.Get(key); ok {
		if data, ok := v.(*DashboardData); ok {
			return data, nil
		}
	}

	data, err := s.build(user)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

// Invalidate drops the cached aggregate after a mutation (meal logged or
// deleted, goal changed).
func (s *DashboardService) Invalidate(userID uint, day time.Time) {
	s.cache.Delete(s.key(userID, day))
}

func (s *DashboardService) key(userID uint, day time.Time) string {
	return fmt.Sprintf("dashboard:%d:%s", userID, day.Format("2006-01-02"))
}

func (s *DashboardService) build(user *models.User) (*DashboardData, error) {
	out := &DashboardData{}

	out.User.ID = user.ID
	out.User.Username = user.Username
	out.User.WeightKg = user.WeightKg
	out.User.ProteinGoal = user.ProteinGoal
	out.User.LastWeightUpdate = user.LastWeightUpdate
	if user.LastWeightUpdate == nil {
		out.User.NeedsWeightUpdate = true
	} else {
		out.User.NeedsWeightUpdate = time.Since(*user.LastWeightUpdate) >= 7*24*time.Hour
	}

	today, err := s.todayTotals(user.ID)
	if err != nil {
		return nil, err
	}
	out.Today.TotalProtein = today.TotalProtein
	out.Today.TotalCalories = today.TotalCalories
	out.Today.MealsCount = today.MealsCount
	if user.ProteinGoal > 0 {
		out.Today.GoalProgress = today.TotalProtein / user.ProteinGoal * 100
		if remaining := user.ProteinGoal - today.TotalProtein; remaining > 0 {
			out.Today.RemainingProtein = remaining
		}
	}

	weekAgo := dayStart(time.Now()).AddDate(0, 0, -6)
	week, err := s.rangeTotals(user.ID, weekAgo)
	if err != nil {
		return nil, err
	}
	out.Weekly.TotalProtein = week.TotalProtein
	out.Weekly.AverageDaily = week.TotalProtein / 7
	out.Weekly.MealsCount = week.MealsCount

	var overall struct {
		Count   int64
		Protein float64
	}
	err = s.db.Model(&models.Meal{}).
		Where("user_id = ?", user.ID).
		Select("COUNT(*) AS count, COALESCE(SUM(total_protein), 0) AS protein").
		Scan(&overall).Error
	if err != nil {
		return nil, err
	}
	out.Overall.TotalMeals = overall.Count
	out.Overall.TotalProteinTracked = overall.Protein
	if overall.Count > 0 {
		out.Overall.AvgProteinPerMeal = overall.Protein / float64(overall.Count)
	}

	return out, nil
}

func (s *DashboardService) todayTotals(userID uint) (*DayTotals, error) {
	return s.rangeTotals(userID, dayStart(time.Now()))
}

func (s *DashboardService) rangeTotals(userID uint, from time.Time) (*DayTotals, error) {
	var row struct {
		Protein  float64
		Calories float64
		Count    int64
	}
	err := s.db.Model(&models.Meal{}).
		Where("user_id = ? AND created_at >= ?", userID, from).
		Select("COALESCE(SUM(total_protein), 0) AS protein, COALESCE(SUM(total_calories), 0) AS calories, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &DayTotals{TotalProtein: row.Protein, TotalCalories: row.Calories, MealsCount: row.Count}, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
