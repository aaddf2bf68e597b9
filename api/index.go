package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/logger"
	"github.com/arnavshah/freewindow-api-go/pkg/server"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()
	log := logger.New("vercel")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	deps, err := server.Bootstrap(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}

	gin.SetMode(gin.ReleaseMode)
	r = server.NewRouter(deps.Handler, deps.Registry, "Free Window API (Go Version on Vercel)")
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
