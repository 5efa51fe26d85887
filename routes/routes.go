package routes

import (
	"time"

	"github.com/kthiza/protein-tracking-app/controllers"
	"github.com/kthiza/protein-tracking-app/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the wired controllers so main stays the only place that
// knows how to construct them.
type Deps struct {
	Users     *controllers.UserController
	Meals     *controllers.MealController
	Dashboard *controllers.DashboardController
	Foods     *controllers.FoodController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/verify/:token", controllers.VerifyEmail)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", d.Users.GetProfile)
		user.PUT("/weight", d.Users.UpdateWeight)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", d.Meals.Upload)
		meals.GET("", d.Meals.List)
		meals.GET("/:id", d.Meals.Get)
		meals.DELETE("/:id", d.Meals.Delete)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware())
	{
		dashboard.GET("", d.Dashboard.Get)
	}

	foods := r.Group("/foods")
	foods.Use(middlewares.AuthMiddleware())
	{
		foods.GET("/suggestions", d.Foods.Suggestions)
		foods.GET("/:name", d.Foods.Detail)
	}

	devices := r.Group("/devices")
	devices.Use(middlewares.AuthMiddleware())
	{
		devices.POST("/register", d.Devices.Register)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", d.Realtime.AlertsWS)
	}

	return r
}
