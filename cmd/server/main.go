package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/logger"
	"github.com/arnavshah/freewindow-api-go/pkg/server"
)

func main() {
	config.LoadDotEnv()
	log := logger.New("main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := server.Bootstrap(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}
	r := server.NewRouter(deps.Handler, deps.Registry, "Free Window API (Go Version)")

	log.Info().
		Str("port", cfg.Port).
		Str("window", deps.Handler.Config.Window.Interval().String()).
		Strs("days", cfg.Days).
		Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("could not run server")
		os.Exit(1)
	}
}
