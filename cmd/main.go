package main

import (
	"fmt"
	"os"
	"time"

	"github.com/D4V1DYL/HydroSenseAPI/internal/classifier"
	"github.com/D4V1DYL/HydroSenseAPI/internal/clients/gcp"
	"github.com/D4V1DYL/HydroSenseAPI/internal/db"
	"github.com/D4V1DYL/HydroSenseAPI/internal/handlers"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/middleware"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/server"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
	"github.com/D4V1DYL/HydroSenseAPI/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	modelPath := utils.GetEnv("WATER_MODEL_PATH", "models/water_model.json", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	roleRepo := repos.NewRoleRepo(thePG, log)
	companyRepo := repos.NewCompanyRepo(thePG, log)
	mappingRepo := repos.NewUserCompanyMappingRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	propertyRepo := repos.NewWaterPropertyRepo(thePG, log)
	qualityRepo := repos.NewWaterQualityRepo(thePG, log)
	sampleRepo := repos.NewWaterSampleRepo(thePG, log)
	detailRepo := repos.NewWaterSampleDetailRepo(thePG, log)
	predictionRepo := repos.NewWaterPredictionRepo(thePG, log)
	dashboardRepo := repos.NewDashboardRepo(thePG, log)

	// Classifier
	model, err := classifier.LoadLinearModel(modelPath, log)
	if err != nil {
		log.Error("Could not load classifier model", "error", err, "path", modelPath)
		os.Exit(1)
	}

	// Bucket
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(thePG, log, userRepo, roleRepo,
		jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	predictionService := services.NewPredictionService(thePG, log, model, bucketService,
		companyRepo, productRepo, propertyRepo, qualityRepo, sampleRepo, detailRepo, predictionRepo)
	productService := services.NewProductService(thePG, log, bucketService,
		companyRepo, productRepo, sampleRepo, detailRepo, predictionRepo)
	dashboardService := services.NewDashboardService(thePG, log, dashboardRepo, qualityRepo)
	adminService := services.NewAdminService(thePG, log, bucketService,
		userRepo, roleRepo, companyRepo, mappingRepo)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	predictionHandler := handlers.NewPredictionHandler(log, predictionService)
	productHandler := handlers.NewProductHandler(log, productService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(log, adminService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		PredictionHandler: predictionHandler,
		ProductHandler:    productHandler,
		DashboardHandler:  dashboardHandler,
		AdminHandler:      adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
