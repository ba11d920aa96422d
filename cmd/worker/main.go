package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/skyfare/booking-wizard/internal/activities"
	"github.com/skyfare/booking-wizard/internal/config"
	"github.com/skyfare/booking-wizard/internal/database"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/internal/workflows"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	ctx := context.Background()

	// Persistence sink. The worker writes checkout status, passcode attempts
	// and confirmations to the same documents as the API server.
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

	// Confirmation archive is optional; without a DSN bookings are not
	// persisted beyond the workflow result.
	var archive activities.Archiver
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatal("failed to ping database", "error", err)
		}
		archive = database.NewRepository(pool)
		log.Info("connected to confirmation archive")
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatal("failed to connect to temporal", "host", cfg.TemporalHost, "error", err)
	}
	defer c.Close()
	log.Info("connected to temporal", "host", cfg.TemporalHost)

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	// Both checkout flows are registered; the API server picks one by name
	// based on its configured variant.
	w.RegisterWorkflow(workflows.OtpGatedWorkflow)
	w.RegisterWorkflow(workflows.DirectConfirmWorkflow)

	acts := activities.NewActivities(docSink, archive, nil, log)
	w.RegisterActivityWithOptions(acts.PublishStatus, activity.RegisterOptions{Name: "PublishStatus"})
	w.RegisterActivityWithOptions(acts.RecordOTPAttempt, activity.RegisterOptions{Name: "RecordOTPAttempt"})
	w.RegisterActivityWithOptions(acts.VerifyOTP, activity.RegisterOptions{Name: "VerifyOTP"})
	w.RegisterActivityWithOptions(acts.ConfirmBooking, activity.RegisterOptions{Name: "ConfirmBooking"})

	log.Info("starting temporal worker", "taskQueue", cfg.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("worker failed", "error", err)
	}
}
