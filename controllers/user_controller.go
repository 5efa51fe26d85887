package controllers

import (
	"net/http"

	"github.com/kthiza/protein-tracking-app/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Dash *services.DashboardService
}

func NewUserController(dash *services.DashboardService) *UserController {
	return &UserController{Dash: dash}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := services.GetUserByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                 user.ID,
		"username":           user.Username,
		"email":              user.Email,
		"weight_kg":          user.WeightKg,
		"protein_goal":       user.ProteinGoal,
		"last_weight_update": user.LastWeightUpdate,
		"email_verified":     user.EmailVerified,
		"created_at":         user.CreatedAt,
	})
}

func (uc *UserController) UpdateWeight(c *gin.Context) {
	var body struct {
		WeightKg float64 `json:"weight_kg" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.GetUserByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := services.UpdateWeight(user, body.WeightKg, uc.Dash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Weight updated",
		"weight_kg":          user.WeightKg,
		"protein_goal":       user.ProteinGoal,
		"last_weight_update": user.LastWeightUpdate,
	})
}
