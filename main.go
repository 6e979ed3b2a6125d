package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/config"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/database"
	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/kafka"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/logger"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/middleware"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	aws_pkg "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/pkg/aws"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/routes"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// LOG_FILE tees structured JSON logs to a file alongside stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger.InitializeWithWriter(cfg.Env, f)
	} else {
		logger.Initialize(cfg.Env)
	}
	defer logger.Log.Sync()

	redisClient, err := database.NewRedisClient(cfg.RedisURL, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	db, err := database.ConnectPostgres(cfg, logger.Log,
		&models.Product{},
		&models.ShippingOption{},
		&models.Payment{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	gateway := services.NewStripeGateway(cfg.StripeSecretKey)

	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic)
	defer producer.Close()

	// SNS is optional; order events still flow to Kafka without it
	var snsClient aws_pkg.SNSPublisher
	if cfg.OrderSNSTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Log.Warn("AWS config unavailable, SNS publishing disabled", zap.Error(err))
		} else {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(router, db, redisClient, gateway, producer, snsClient, cfg, logger.Log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Checkout service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete.")
}
