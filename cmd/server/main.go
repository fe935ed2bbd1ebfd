// Package main runs the retail-surveillance dashboard API: the camera panel
// coordinator fronted by a gin HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shopsentry/dashboard/config"
	"github.com/shopsentry/dashboard/internal/cameras"
	"github.com/shopsentry/dashboard/internal/middleware"
	"github.com/shopsentry/dashboard/internal/upstream"
	"github.com/shopsentry/dashboard/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	api := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Token:   cfg.Upstream.Token,
		Timeout: time.Duration(cfg.Upstream.TimeoutSec) * time.Second,
	}, logger)

	panels := cameras.NewManager(api, cameras.Options{
		PollInterval: time.Duration(cfg.Poll.IntervalSec) * time.Second,
	}, logger)
	cameraHandler := cameras.NewHandler(panels, cfg.Recording, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Camera panel (per-shop view lifecycle + commands)
	router.POST("/shops/:id/panel/open", cameraHandler.OpenPanel)
	router.POST("/shops/:id/panel/close", cameraHandler.ClosePanel)
	router.GET("/shops/:id/cameras", cameraHandler.ListCameras)
	router.POST("/shops/:id/cameras", cameraHandler.AddCamera)
	router.DELETE("/shops/:id/cameras/:cameraId", cameraHandler.DeleteCamera)
	router.POST("/shops/:id/recording/start", cameraHandler.StartRecording)
	router.POST("/shops/:id/recording/stop", cameraHandler.StopRecording)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	panels.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
