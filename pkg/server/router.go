package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/arnavshah/freewindow-api-go/pkg/auth"
	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/database"
	"github.com/arnavshah/freewindow-api-go/pkg/handlers"
	"github.com/arnavshah/freewindow-api-go/pkg/logger"
	"github.com/arnavshah/freewindow-api-go/pkg/metrics"
)

// Version is reported by the root endpoint.
const Version = "3.0.0"

// NewRouter registers every route on a new gin engine. gatherer backs
// /metrics; nil uses the default Prometheus gatherer.
func NewRouter(h *handlers.Handler, gatherer prometheus.Gatherer, banner string) *gin.Engine {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), h.RequestID())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": banner,
			"version": Version,
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Availability Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/availability", h.AvailabilityJSON)
		api.POST("/availability/upload", h.AvailabilityUpload)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}

// Deps are the long-lived objects behind a router.
type Deps struct {
	DB       *gorm.DB
	Handler  *handlers.Handler
	Registry *prometheus.Registry
}

// Bootstrap connects the database, seeds the admin account and builds the
// handler from cfg.
func Bootstrap(cfg *config.Config) (*Deps, error) {
	log := logger.New("server")

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret, logger.New("auth"))
	if err := authSvc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if cfg.JWTSecret == "" || cfg.APIMasterSecret == "" {
		log.Warn().Msg("JWT_SECRET or API_MASTER_SECRET is empty; tokens and keys are not secure")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	h := handlers.New(db, authSvc, cfg, rec, logger.New("availability"))
	return &Deps{DB: db, Handler: h, Registry: reg}, nil
}
