package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"washpoint-system/config"
	"washpoint-system/internal/database"
	"washpoint-system/internal/server/handlers"
	"washpoint-system/internal/server/middleware"
)

func main() {
	cfg := config.LoadConfig()

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		log.Fatalf("Invalid BUSINESS_TIMEZONE %q: %v", cfg.BusinessTimezone, err)
	}

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb := config.NewRedisClient(cfg.Redis)

	authHandler := handlers.NewAuthHandler(db, cfg.Auth)
	paymentHandler := handlers.NewPaymentHandler(db, rdb)
	catalogHandler := handlers.NewCatalogHandler(db)
	reportHandler := handlers.NewReportHandler(db, rdb, loc)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth([]byte(cfg.Auth.JWTSecret)))
	{
		payments := protected.Group("/payments")
		{
			payments.POST("", paymentHandler.CreatePayment)
			payments.GET("", paymentHandler.ListPayments)
			payments.GET("/:id", paymentHandler.GetPayment)
			payments.PUT("/:id", paymentHandler.UpdatePayment)
			payments.DELETE("/:id", paymentHandler.DeletePayment)
		}

		employees := protected.Group("/employees")
		{
			employees.POST("", catalogHandler.CreateEmployee)
			employees.GET("", catalogHandler.ListEmployees)
			employees.GET("/:id", catalogHandler.GetEmployee)
			employees.PUT("/:id", catalogHandler.UpdateEmployee)
		}

		services := protected.Group("/services")
		{
			services.POST("", catalogHandler.CreateService)
			services.GET("", catalogHandler.ListServices)
			services.PUT("/:id", catalogHandler.UpdateService)
			services.DELETE("/:id", catalogHandler.DeleteService)
		}

		chemicals := protected.Group("/chemicals")
		{
			chemicals.POST("", catalogHandler.CreateChemical)
			chemicals.GET("", catalogHandler.ListChemicals)
			chemicals.PUT("/:id", catalogHandler.UpdateChemical)
			chemicals.DELETE("/:id", catalogHandler.DeleteChemical)
		}

		loyalty := protected.Group("/loyalty")
		{
			loyalty.POST("", catalogHandler.CreateLoyaltyCustomer)
			loyalty.GET("", catalogHandler.ListLoyaltyCustomers)
			loyalty.PUT("/:id", catalogHandler.UpdateLoyaltyCustomer)
		}

		protected.GET("/audit-logs", catalogHandler.ListAuditLogs)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/summary", reportHandler.DashboardSummary)
		}

		protected.GET("/commissions", reportHandler.Commissions)

		reports := protected.Group("/reports")
		{
			reports.GET("/shift", reportHandler.ShiftReport)
			reports.GET("/shift/export", reportHandler.ShiftReportExport)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	port := ":" + cfg.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
