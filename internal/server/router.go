package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/D4V1DYL/HydroSenseAPI/internal/handlers"
	"github.com/D4V1DYL/HydroSenseAPI/internal/middleware"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	PredictionHandler *handlers.PredictionHandler
	ProductHandler    *handlers.ProductHandler
	DashboardHandler  *handlers.DashboardHandler
	AdminHandler      *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	auth := router.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	// Any authenticated caller
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		dashboard := protected.Group("/dashboard")
		dashboard.GET("/leaderboard", cfg.DashboardHandler.Leaderboard)
		dashboard.GET("/companies/:id/products", cfg.DashboardHandler.CompanyProducts)
		dashboard.GET("/companies/:id/history", cfg.DashboardHandler.CompanyHistory)
	}

	// Mutations: admin and superadmin only
	mutating := router.Group("/")
	mutating.Use(cfg.AuthMiddleware.RequireAuth())
	mutating.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin, types.RoleSuperadmin))
	{
		mutating.POST("/predict/water", cfg.PredictionHandler.PredictWater)
		mutating.POST("/predict/product", cfg.PredictionHandler.PredictForNewProduct)
		mutating.POST("/products", cfg.ProductHandler.CreateProduct)
		mutating.DELETE("/products/:id", cfg.ProductHandler.DeleteProduct)
	}

	// Superadmin surface
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleSuperadmin))
	{
		admin.POST("/companies", cfg.AdminHandler.CreateCompany)
		admin.POST("/assign-role", cfg.AdminHandler.AssignRole)
		admin.POST("/assign-company", cfg.AdminHandler.AssignCompany)
		admin.GET("/companies", cfg.AdminHandler.ListCompanies)
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.GET("/user-company-mappings", cfg.AdminHandler.ListUserCompanyMappings)
	}

	return router
}
