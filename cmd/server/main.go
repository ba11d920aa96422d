package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"

	"github.com/skyfare/booking-wizard/internal/config"
	"github.com/skyfare/booking-wizard/internal/handlers"
	"github.com/skyfare/booking-wizard/internal/router"
	"github.com/skyfare/booking-wizard/internal/service"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/internal/visitor"
	"github.com/skyfare/booking-wizard/internal/websocket"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	ctx := context.Background()

	// Persistence sink. Falls back to in-memory when MongoDB is unreachable
	// so the wizard still runs in local development.
	var docSink sink.Sink
	mongoClient, err := sink.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Warn("mongodb unavailable, using in-memory sink", "error", err)
		docSink = sink.NewMemorySink()
	} else {
		defer mongoClient.Disconnect(ctx)
		docSink = sink.NewMongoSink(mongoClient, cfg.MongoDB, cfg.SinkCollection)
		log.Info("connected to mongodb", "database", cfg.MongoDB, "collection", cfg.SinkCollection)
	}

	// Visitor-id cache.
	var visitors visitor.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		visitors = visitor.NewRedisCache(rdb)
		log.Info("connected to redis", "addr", cfg.RedisAddr)
	} else {
		visitors = visitor.NewMemoryCache()
	}

	// Temporal client.
	temporalClient, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatal("failed to create temporal client", "host", cfg.TemporalHost, "error", err)
	}
	defer temporalClient.Close()

	// WebSocket hub for live checkout status updates.
	hub := websocket.NewHub(log)
	go hub.Run()

	bookingService := service.NewBookingService(
		temporalClient, docSink, visitors, cfg.CheckoutVariant, cfg.TaskQueue, log)
	h := handlers.NewHandler(bookingService, hub)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("api server starting", "port", cfg.Port, "variant", string(cfg.CheckoutVariant))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
