package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/swiftcart/fulfillment/internal/actor"
	"github.com/swiftcart/fulfillment/internal/cache"
	"github.com/swiftcart/fulfillment/internal/httpserver"
	"github.com/swiftcart/fulfillment/internal/metrics"
	"github.com/swiftcart/fulfillment/internal/mykafka"
	"github.com/swiftcart/fulfillment/internal/repo"
	"github.com/swiftcart/fulfillment/internal/service"
	"github.com/swiftcart/fulfillment/pkg/config"
	"github.com/swiftcart/fulfillment/pkg/db"
	"github.com/swiftcart/fulfillment/pkg/logging"
	loggingmw "github.com/swiftcart/fulfillment/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment")
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.AutoMigrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	store := &repo.GormRepo{DB: database}
	producer := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	viewCache := cache.New(cfg.RedisAddr)
	m := metrics.New()

	orderHandler := &httpserver.OrderHTTP{
		Checkout: &service.CheckoutService{
			Repo:               store,
			Producer:           producer,
			Cache:              viewCache,
			Metrics:            m,
			DefaultDeliveryFee: cfg.DefaultDeliveryFee,
		},
		Status: &service.StatusService{
			Repo:     store,
			Producer: producer,
			Cache:    viewCache,
			Metrics:  m,
		},
		Views: &service.ViewService{
			Repo:  store,
			Cache: viewCache,
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler: orderHandler,
		Gate:         actor.NewGate(cfg.JWTSecret),
	})

	go func() {
		logger.Info("starting fulfillment service", "port", cfg.ServerPort)
		if err := e.Start(":" + strconv.Itoa(cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := viewCache.Close(); err != nil {
		logger.Error("redis close", "error", err)
	}

	logger.Info("shutdown complete")
}
