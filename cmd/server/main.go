package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/dreamyvoice/internal/config"
	"github.com/user/dreamyvoice/internal/handler"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/router"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.LogLevel)

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		logger.Errorf("database connection failed: %v", err)
		os.Exit(1)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Errorf("migration failed: %v", err)
		os.Exit(1)
	}
	repos := repository.NewRepositories(db, cfg.PlayerAllowedHosts)

	store, err := storage.NewS3Store(cfg.S3)
	if err != nil {
		logger.Errorf("object storage init failed: %v", err)
		os.Exit(1)
	}
	gateway := storage.NewGateway(store, map[storage.Bucket]string{
		storage.BucketAvatars: cfg.S3.BucketAvatars,
		storage.BucketCovers:  cfg.S3.BucketCovers,
	})

	sessionSvc := service.NewSessionService(repos.Session, cfg.SessionTTL, cfg.SessionCookieSecret)
	metadataSvc := service.NewMetadataService(repos.Metadata)
	catalogSvc := service.NewCatalogService(repos, gateway)

	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	if err := metadataSvc.Sync(syncCtx); err != nil {
		logger.Warningf("metadata sync failed: %v", err)
	}
	cancelSync()

	cleanupSvc := service.NewCleanupService(sessionSvc, cfg.SessionPurgeSchedule)
	if err := cleanupSvc.Start(); err != nil {
		logger.Errorf("invalid SESSION_CLEANUP_SCHEDULE: %v", err)
		os.Exit(1)
	}
	defer cleanupSvc.Stop()

	cookie := middleware.SessionCookie{
		Name:     cfg.SessionCookieName,
		Secure:   cfg.SessionCookieSecure,
		SameSite: cfg.SessionCookieSameSite,
	}
	h := &handler.Handler{
		Auth:      service.NewAuthService(repos.User),
		Sessions:  sessionSvc,
		Catalog:   catalogSvc,
		Favorites: service.NewFavoriteService(repos),
		Media:     service.NewMediaService(gateway),
		Profile:   service.NewProfileService(repos.User, gateway),
		Team:      service.NewTeamService(repos.TeamMember, gateway),
		Metadata:  metadataSvc,
		Admin:     service.NewAdminService(repos, gateway),
		Cookie:    cookie,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(h, router.Options{
		Sessions:    sessionSvc,
		Cookie:      cookie,
		FlashSecret: cfg.SessionCookieSecret,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   5 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Infof("api listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}
