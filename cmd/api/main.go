package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aviseihq/avisei-api/internal/config"
	dbpkg "github.com/aviseihq/avisei-api/internal/db"
	"github.com/aviseihq/avisei-api/internal/logging"
	"github.com/aviseihq/avisei-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.Env)

	db := dbpkg.NewDB(cfg, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
