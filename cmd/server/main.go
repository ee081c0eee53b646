package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/adapter/catalog"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/adapter/events"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/adapter/handler"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/adapter/storage"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/config"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/service"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("catalog_url", cfg.CatalogURL),
		zap.String("kafka_brokers", cfg.KafkaBrokers))

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("Failed to open MySQL", zap.Error(err))
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	// Adapters
	orderRepo := storage.NewMySQLAdapter(db)
	cacheRepo := storage.NewRedisAdapter(redisClient)
	catalogClient := catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogTimeout)
	publisher := events.NewKafkaPublisher(cfg.BrokerList(), cfg.KafkaTopic)
	defer publisher.Close()

	orderService := service.NewOrderService(orderRepo, catalogClient, cacheRepo, publisher, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	serverMetrics := metrics.NewServerMetrics("api")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(serverMetrics.Middleware())

	orderHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "healthy", "service": "orders"}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			status["status"] = "unhealthy"
			status["mysql"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			status["status"] = "unhealthy"
			status["redis"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
