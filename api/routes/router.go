package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/starterhq/backoffice-backend/api/controllers"
	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/internal/dashboard"
	"github.com/starterhq/backoffice-backend/internal/files"
	"github.com/starterhq/backoffice-backend/internal/inventory"
	"github.com/starterhq/backoffice-backend/internal/products"
	"github.com/starterhq/backoffice-backend/internal/settings"
	"github.com/starterhq/backoffice-backend/internal/users"
	"github.com/starterhq/backoffice-backend/pkg/auth/session"
	"github.com/starterhq/backoffice-backend/pkg/config"
	"github.com/starterhq/backoffice-backend/pkg/db"
	"github.com/starterhq/backoffice-backend/pkg/logger"
	"github.com/starterhq/backoffice-backend/pkg/metrics"
	pkgredis "github.com/starterhq/backoffice-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *pkgredis.Client
	Sessions         session.AccessSessionChecker
	Registry         *prometheus.Registry
	UserService      users.Service
	ProductService   products.Service
	InventoryService inventory.Service
	SettingsService  settings.Service
	DashboardService dashboard.Service
	FileService      files.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	readyDeps := controllers.ReadyDeps(deps.DB, nil)
	if deps.Redis != nil {
		readyDeps = controllers.ReadyDeps(deps.DB, deps.Redis)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.UserService, logg))
			r.Get("/me", controllers.CurrentUser(deps.UserService, logg))
			r.Get("/{id}", controllers.GetUser(deps.UserService, logg))
			r.Put("/{id}", controllers.UpdateUser(deps.UserService, logg))
			r.Delete("/{id}", controllers.DeleteUser(deps.UserService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Get("/page", controllers.PageProducts(deps.ProductService, logg))
			r.Get("/{id}", controllers.GetProduct(deps.ProductService, logg))
			r.Put("/{id}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(deps.ProductService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Put("/update/{id}", controllers.UpdateInventory(deps.InventoryService, logg))
			r.Get("/{id}", controllers.GetInventory(deps.InventoryService, logg))
		})

		r.Route("/settings/user/{userId}", func(r chi.Router) {
			r.Get("/", controllers.GetUserSettings(deps.SettingsService, logg))
			r.Put("/", controllers.UpdateUserSettings(deps.SettingsService, logg))
			r.Put("/password", controllers.UpdatePassword(deps.SettingsService, logg))
			r.Put("/notifications", controllers.UpdateNotificationSettings(deps.SettingsService, logg))
			r.Put("/appearance", controllers.UpdateAppearanceSettings(deps.SettingsService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats/{userId}", controllers.DashboardStats(deps.DashboardService, logg))
			r.Get("/activity/{userId}", controllers.DashboardActivity(deps.DashboardService, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", controllers.UploadFile(deps.FileService, cfg.Upload, logg))
			r.Get("/", controllers.ListFiles(deps.FileService, logg))
			r.Get("/download/{id}", controllers.DownloadFile(deps.FileService, logg))
			r.Get("/{id}", controllers.GetFile(deps.FileService, logg))
			r.Delete("/{id}", controllers.DeleteFile(deps.FileService, logg))
		})
	})

	return r
}
