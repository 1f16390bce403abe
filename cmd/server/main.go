package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backhouse-backend/internal/config"
	"backhouse-backend/internal/database"
	"backhouse-backend/internal/handlers"
	"backhouse-backend/internal/middleware"
	"backhouse-backend/internal/repository"
	"backhouse-backend/internal/router"
	"backhouse-backend/internal/services"
	"backhouse-backend/internal/websocket"
	"backhouse-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Backhouse Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	attendanceRepo := repository.NewAttendanceRepo(pool)
	safeCountRepo := repository.NewSafeCountRepo(pool)
	inventoryRepo := repository.NewInventoryRepo(pool)
	catalogRepo := repository.NewCatalogRepo(pool)
	salesRepo := repository.NewSalesRepo(pool)
	alertRepo := repository.NewAlertRepo(pool)
	exportRepo := repository.NewExportRepo(pool)

	// ──── Initialize Services ────
	tracker := middleware.NewActivityTracker(redisClients.Queue, time.Duration(cfg.InactivityTimeoutMinutes)*time.Minute)
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret, tracker)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth, tracker)
	attendanceService := services.NewAttendanceService(attendanceRepo)
	alertService := services.NewAlertService(alertRepo, redisClients.Queue)
	safeCountService := services.NewSafeCountService(safeCountRepo, salesRepo, alertService, cfg.SafeVarianceAlertCents)
	inventoryService := services.NewInventoryService(inventoryRepo, alertRepo, alertService)
	reportsService := services.NewReportsService(salesRepo)
	exportService := services.NewExportService(exportRepo, redisClients.Queue)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	safeCountHandler := handlers.NewSafeCountHandler(safeCountService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	reportsHandler := handlers.NewReportsHandler(reportsService, exportService)
	alertHandler := handlers.NewAlertHandler(alertService)

	// ──── Step 5: Start Export Worker Pool ────
	workerPool := worker.NewPool(
		redisClients.Queue,
		redisClients.Queue,
		exportRepo,
		reportsService,
		cfg.ExportPath,
		cfg.ExportWorkers,
	)
	workerPool.Start()
	log.Printf("✓ Export worker pool started (%d goroutines)", cfg.ExportWorkers)

	alertScanner := services.NewAlertScanner(inventoryRepo, alertRepo, alertService, time.Duration(cfg.AlertScanIntervalMinutes)*time.Minute)
	alertScanner.Start()
	log.Println("✓ Low-stock alert scanner started")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret, services.AlertChannel)
	wsHub.Start()
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		userHandler,
		attendanceHandler,
		safeCountHandler,
		inventoryHandler,
		catalogHandler,
		reportsHandler,
		alertHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		alertScanner.Stop()
		wsHub.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Backhouse Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
