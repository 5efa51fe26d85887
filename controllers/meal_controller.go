package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kthiza/protein-tracking-app/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

// Upload accepts multipart form data: the image file, an optional
// comma-separated "food_items" field, and "use_ai_detection".
func (mc *MealController) Upload(c *gin.Context) {
	user, err := services.GetUserByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req services.LogMealRequest
	req.UseAI = c.PostForm("use_ai_detection") == "true"
	if manual := c.PostForm("food_items"); manual != "" {
		req.ManualFoods = strings.Split(manual, ",")
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}
	req.Image = data
	req.Filename = header.Filename
	req.ContentType = header.Header.Get("Content-Type")

	meal, err := mc.Meals.LogMeal(c.Request.Context(), user, req)
	if err != nil {
		if errors.Is(err, services.ErrNoFoodDetected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "no food detected; add food items manually",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Meal logged",
		"meal_id":        meal.ID,
		"food_items":     meal.Foods(),
		"total_protein":  meal.TotalProtein,
		"total_calories": meal.TotalCalories,
		"image_url":      meal.ImageURL,
	})
}

func (mc *MealController) List(c *gin.Context) {
	meals, err := mc.Meals.ListMeals(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(meals))
	for _, m := range meals {
		out = append(out, gin.H{
			"id":             m.ID,
			"food_items":     m.Foods(),
			"total_protein":  m.TotalProtein,
			"total_calories": m.TotalCalories,
			"image_url":      m.ImageURL,
			"created_at":     m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (mc *MealController) Get(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	meal, err := mc.Meals.GetMeal(c.GetUint("userID"), uint(mealID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             meal.ID,
		"food_items":     meal.Foods(),
		"total_protein":  meal.TotalProtein,
		"total_calories": meal.TotalCalories,
		"image_url":      meal.ImageURL,
		"created_at":     meal.CreatedAt,
	})
}

func (mc *MealController) Delete(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	if err := mc.Meals.DeleteMeal(c.GetUint("userID"), uint(mealID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}
