package controllers

import (
	"errors"
	"net/http"

	"github.com/kthiza/protein-tracking-app/services"

	"github.com/gin-gonic/gin"
)

func Register(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.RegisterUser(body.Username, body.Email, body.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created. Please check your email to verify your account.",
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func VerifyEmail(c *gin.Context) {
	user, err := services.VerifyEmail(c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrBadToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid verification token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Email verified. You can now log in.",
		"username": user.Username,
	})
}

func Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := services.AuthenticateUser(body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "please verify your email before logging in"})
		case errors.Is(err, services.ErrBadCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        token,
		"user_id":      user.ID,
		"username":     user.Username,
		"weight_kg":    user.WeightKg,
		"protein_goal": user.ProteinGoal,
	})
}
