package main

import (
	"log"
	"os"
	"time"

	"github.com/kthiza/protein-tracking-app/cache"
	"github.com/kthiza/protein-tracking-app/config"
	"github.com/kthiza/protein-tracking-app/controllers"
	"github.com/kthiza/protein-tracking-app/nutrition"
	"github.com/kthiza/protein-tracking-app/routes"
	"github.com/kthiza/protein-tracking-app/services"
	"github.com/kthiza/protein-tracking-app/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	table, err := nutrition.LoadTable()
	if err != nil {
		log.Fatalf("nutrition table: %v", err)
	}

	cfgPath := os.Getenv("NUTRITION_CONFIG")
	if cfgPath == "" {
		cfgPath = "nutrition.toml"
	}
	ncfg, err := nutrition.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("nutrition config: %v", err)
	}

	pipeline := nutrition.NewPipeline(table, ncfg)

	vision, err := services.NewVisionService()
	if err != nil {
		// the filename fallback still works without Rekognition
		log.Printf("vision service unavailable: %v", err)
		vision = nil
	}

	dashCache := cache.New(512, 5*time.Minute)
	dash := services.NewDashboardService(config.DB, dashCache)
	meals := services.NewMealService(vision, pipeline, dash)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
		push = nil
	}
	services.InitAlertDeps(hub, push)

	r := routes.SetupRouter(routes.Deps{
		Users:     controllers.NewUserController(dash),
		Meals:     controllers.NewMealController(meals),
		Dashboard: controllers.NewDashboardController(dash),
		Foods:     controllers.NewFoodController(table),
		Devices:   controllers.NewDeviceController(push),
		Realtime:  controllers.NewRealtimeController(hub),
	})
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
