package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"staffdesk/internal/api/handler"
	"staffdesk/internal/api/middleware"
	"staffdesk/internal/api/router"
	"staffdesk/internal/cache"
	"staffdesk/internal/config"
	"staffdesk/internal/core/model"
	"staffdesk/internal/core/repository"
	"staffdesk/internal/core/service"
	"staffdesk/internal/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, cleanup := logger.New(cfg.LogLevel, cfg.LogJSON, cfg.LogFile)
	defer cleanup()

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}

	db, err := config.ConnectMongoDB(cfg.Mongo)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	cache.Initialize(cfg.Redis.URL, log)
	defer cache.Close()

	userRepo := repository.NewMongoUserRepository(db)
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(startupCtx); err != nil {
		log.Fatal("creating indexes", zap.Error(err))
	}
	if err := userRepo.EnsureSequence(startupCtx); err != nil {
		log.Fatal("seeding employee id sequence", zap.Error(err))
	}

	userService := service.NewUserService(userRepo)

	userHandler := handler.NewUserHandler(userService, log)
	authHandler := handler.NewAuthHandler(userService, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, log)
	employeeHandler := handler.NewRosterHandler(userService, model.RoleManager, log)
	vendorHandler := handler.NewRosterHandler(userService, model.RoleVendor, log)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	r := router.NewRouter(userHandler, authHandler, employeeHandler, vendorHandler, authMiddleware, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
