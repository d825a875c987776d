package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/dreamyvoice/internal/config"
	"github.com/user/dreamyvoice/internal/edge"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, using process environment")
	}

	cfg, err := config.LoadEdge()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.LogLevel)

	proxy, err := edge.NewProxy(cfg.APIBaseURL, cfg.Prefix, edge.NewUpstreamClient())
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	proxy.Register(r)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Infof("edge listening on http://localhost:%s, forwarding %s to %s", cfg.Port, cfg.Prefix, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("edge failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down edge...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
}
