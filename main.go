package main

import (
	"log"

	"github.com/DikshantJo/ZwitchNew-sub000/config"
	"github.com/DikshantJo/ZwitchNew-sub000/controllers"
	"github.com/DikshantJo/ZwitchNew-sub000/routes"
	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire the gateway client and webhook reconciler
	controllers.Init(cfg)

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	router := routes.SetupRouter()

	utils.LogInfo("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Failed to start server: %v", err)
		log.Fatal("Failed to start server:", err)
	}
}
