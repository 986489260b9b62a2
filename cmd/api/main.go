package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	"github.com/spectrumpath/aba-scheduler/internal/logging"
	"github.com/spectrumpath/aba-scheduler/internal/routes"
	"github.com/spectrumpath/aba-scheduler/internal/store"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger("aba-scheduler")

	clk := clock.System{TZ: cfg.Timezone}
	repo := store.NewMemory(clk)
	store.SeedPractice(repo)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, repo, clk, cfg, logger)

	logger.Info("server starting", "addr", cfg.Addr(), "timezone", cfg.Timezone)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
