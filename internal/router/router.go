package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"backhouse-backend/internal/handlers"
	"backhouse-backend/internal/middleware"
	"backhouse-backend/internal/models"
	"backhouse-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	attendanceHandler *handlers.AttendanceHandler,
	safeCountHandler *handlers.SafeCountHandler,
	inventoryHandler *handlers.InventoryHandler,
	catalogHandler *handlers.CatalogHandler,
	reportsHandler *handlers.ReportsHandler,
	alertHandler *handlers.AlertHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)

				// Account creation is an admin operation
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.Role.CanManageUsers))
					r.Post("/register", authHandler.Register)
				})
			})
		})

		// ──── User Routes ────
		r.Route("/users", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.Role.CanManageUsers))
				r.Put("/{id}", userHandler.Update)
			})
		})

		// ──── Attendance Routes ────
		r.Route("/attendance", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{userID}/{month}", attendanceHandler.GetMonth)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.Role.CanEditAttendance))
				r.Post("/{userID}/sessions", attendanceHandler.AddSession)
				r.Put("/{userID}/sessions/{sessionID}", attendanceHandler.EditSession)
				r.Delete("/{userID}/sessions/{sessionID}", attendanceHandler.DeleteSession)
			})
		})

		// ──── Safe Count Routes ────
		r.Route("/safe-counts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", safeCountHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.Role.CanRecordSafeCount))
				r.Post("/", safeCountHandler.Record)
			})
		})

		// ──── Inventory Routes ────
		r.Route("/inventory", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", inventoryHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.Role.CanManageCatalog))
				r.Post("/", inventoryHandler.Create)
				r.Put("/{id}", inventoryHandler.Update)
				r.Delete("/{id}", inventoryHandler.Delete)
			})
		})

		// ──── Catalog Routes ────
		r.Route("/catalog", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/items", catalogHandler.ListItems)
			r.Get("/sauces", catalogHandler.ListSauces)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.Role.CanManageCatalog))
				r.Post("/categories", catalogHandler.CreateCategory)
				r.Delete("/categories/{id}", catalogHandler.DeleteCategory)
				r.Post("/items", catalogHandler.CreateItem)
				r.Put("/items/{id}", catalogHandler.UpdateItem)
				r.Delete("/items/{id}", catalogHandler.DeleteItem)
				r.Post("/sauces", catalogHandler.CreateSauce)
				r.Delete("/sauces/{id}", catalogHandler.DeleteSauce)
			})
		})

		// ──── Report Routes ────
		r.Route("/reports", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/items", reportsHandler.Items)
			r.Get("/customers", reportsHandler.Customers)
			r.Post("/export", reportsHandler.Export)
			r.Get("/export/{id}", reportsHandler.ExportStatus)
			r.Get("/export/{id}/download", reportsHandler.ExportDownload)
			r.Get("/{type}", reportsHandler.Bucketed)
		})

		// ──── Alert Routes ────
		r.Route("/alerts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", alertHandler.ListOpen)
			r.Put("/{id}/ack", alertHandler.Acknowledge)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
