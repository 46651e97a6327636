package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/handlers"
	"finsight/internal/logger"
	"finsight/internal/middleware"
	"finsight/internal/services"
	"finsight/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "finsight/internal/docs" // Import swagger docs
)

// @title           Finsight API
// @version         1.0
// @description     Finsight projects a user's cash flow day by day, scores financial stress, simulates hypothetical expenses and recommends actions.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	router := setupRouter(dbManager.DB(), appConfig, dbManager.Ping)

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Infof("Starting Finsight server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// setupRouter wires services, handlers and routes. ping backs the health check.
func setupRouter(db *gorm.DB, appConfig *config.Config, ping func(context.Context) error) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	incomeService := services.NewIncomeService(db)
	expenseService := services.NewExpenseService(db)
	goalService := services.NewGoalService(db)
	snapshotService := services.NewSnapshotService(db, appConfig.ForecastSmoothingDays)
	forecastService := services.NewForecastService(snapshotService, services.ForecastOptions{
		DefaultHorizonDays:  appConfig.ForecastHorizonDays,
		SmoothingWindowDays: appConfig.ForecastSmoothingDays,
	})

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			logger.Get().Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every API route is scoped to the token subject.
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpsertProfile)

	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncomeEvent)
	income.GET("", incomeHandler.GetIncomeEvents)
	income.GET("/:id", incomeHandler.GetIncomeEvent)
	income.DELETE("/:id", incomeHandler.DeleteIncomeEvent)

	fixed := protected.Group("/expenses/fixed")
	fixed.POST("", expenseHandler.CreateFixedExpense)
	fixed.GET("", expenseHandler.GetFixedExpenses)
	fixed.PATCH("/:id/active", expenseHandler.SetFixedExpenseActive)
	fixed.DELETE("/:id", expenseHandler.DeleteFixedExpense)

	variable := protected.Group("/expenses/variable")
	variable.POST("", expenseHandler.CreateVariableExpense)
	variable.GET("", expenseHandler.GetVariableExpenses)
	variable.DELETE("/:id", expenseHandler.DeleteVariableExpense)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.POST("/:id/contributions", goalHandler.Contribute)
	goals.POST("/:id/abandon", goalHandler.AbandonGoal)

	forecast := protected.Group("/forecast")
	forecast.GET("/projection", forecastHandler.GetProjection)
	forecast.GET("/risk", forecastHandler.GetRiskScore)
	forecast.POST("/what-if", forecastHandler.SimulateWhatIf)
	forecast.GET("/recommendations", forecastHandler.GetRecommendations)
	forecast.GET("/goals", forecastHandler.GetGoalProgress)
	forecast.GET("/dashboard", forecastHandler.GetDashboard)

	protected.GET("/audit-logs", auditHandler.GetAuditLogs)

	return router
}
