package controllers

import (
	"net/http"

	"github.com/kthiza/protein-tracking-app/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dash *services.DashboardService
}

func NewDashboardController(dash *services.DashboardService) *DashboardController {
	return &DashboardController{Dash: dash}
}

func (dc *DashboardController) Get(c *gin.Context) {
	user, err := services.GetUserByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	data, err := dc.Dash.Dashboard(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}
