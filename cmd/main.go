package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"shopledger/internal/caching"
	"shopledger/internal/handlers"
	"shopledger/internal/jobs"
	"shopledger/internal/middleware"
	"shopledger/internal/repositories"
	"shopledger/internal/services"
	"shopledger/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDBStr := os.Getenv("REDIS_DB")
	redisDB := 0 // Default DB
	if redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Create repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	repairRepo := repositories.NewRepairRepo(pool)
	logInRepo := repositories.NewLogInRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	itemSvc := services.NewItemService(itemRepo, cacheSvc)
	repairSvc := services.NewRepairService(repairRepo)
	logInSvc := services.NewLogInService(logInRepo)
	reconcileSvc := services.NewReconcileService(logInRepo, itemRepo, repairRepo, cacheSvc)

	// Create handlers
	healthHandlers := handlers.NewHealthHandlers(pool)
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	repairHandlers := handlers.NewRepairHandlers(repairSvc)
	logInHandlers := handlers.NewLogInHandlers(reconcileSvc, logInSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTMiddleware(jwtSecret))

	// Item routes
	v1.GET("/items", itemHandlers.ListItems)
	v1.POST("/items", itemHandlers.CreateItem)
	v1.GET("/items/:id", itemHandlers.GetItem)
	v1.GET("/items/:id/history", itemHandlers.GetItemHistory)
	v1.PUT("/items/:id/status", itemHandlers.SetItemStatus)

	// Repair routes
	v1.GET("/repairs", repairHandlers.ListRepairs)
	v1.POST("/repairs", repairHandlers.CreateRepair)
	v1.GET("/repairs/:id", repairHandlers.GetRepair)

	// Log-in record routes
	v1.GET("/log-ins", logInHandlers.ListLogIns)
	v1.POST("/log-ins", logInHandlers.CreateLogIn)
	v1.GET("/log-ins/:id", logInHandlers.GetLogIn)
	v1.PUT("/log-ins/:id", logInHandlers.UpdateLogIn)

	// Scheduled jobs
	repairAlerts := jobs.NewRepairAlertService(repairSvc, tenantRepo)
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if err := repairAlerts.ScheduledOverdueCheck(context.Background()); err != nil {
				log.Printf("Overdue repair check failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule overdue repair check: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown failed: %v", err)
		}
	}()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Shopledger server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
