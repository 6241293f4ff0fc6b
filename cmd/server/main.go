package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shoptrack/internal/applicant"
	applicanthandler "shoptrack/internal/applicant/handler"
	applicantmetrics "shoptrack/internal/applicant/metrics"
	applicantservice "shoptrack/internal/applicant/service"
	applicantstore "shoptrack/internal/applicant/store"
	"shoptrack/internal/audit"
	"shoptrack/internal/auth"
	"shoptrack/internal/constants"
	notehandler "shoptrack/internal/note/handler"
	notemetrics "shoptrack/internal/note/metrics"
	noteservice "shoptrack/internal/note/service"
	notestore "shoptrack/internal/note/store"
	"shoptrack/internal/platform/config"
	"shoptrack/internal/platform/httpserver"
	"shoptrack/internal/platform/kafka"
	"shoptrack/internal/platform/logger"
	platformmetrics "shoptrack/internal/platform/metrics"
	"shoptrack/internal/platform/postgres"
	platformredis "shoptrack/internal/platform/redis"
	"shoptrack/internal/profile"
	profilestore "shoptrack/internal/profile/store"
	"shoptrack/internal/ratelimit"
	"shoptrack/internal/server"
	shophandler "shoptrack/internal/shop/handler"
	shopmetrics "shoptrack/internal/shop/metrics"
	shopservice "shoptrack/internal/shop/service"
	shopstore "shoptrack/internal/shop/store"
	"shoptrack/internal/upload"
	"shoptrack/pkg/platform/tx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := map[string]server.HealthCheck{}

	// Persistence. Without DATABASE_URL everything runs in memory,
	// which is enough for local development and demos.
	var (
		applicants applicant.Store
		notes      noteStore
		shops      shopservice.ShopStore
		profiles   profile.Store
		txRunner   tx.Runner = tx.Passthrough{}
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		db, err := postgres.OpenSQL(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		applicants = applicantstore.NewPostgres(pool.Pool)
		notes = notestore.NewPostgres(pool.Pool)
		shops = shopstore.NewPostgres(db)
		profiles = profilestore.NewPostgres(db)
		txRunner = pool
		health["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }
		log.Info("using postgres stores")
	} else {
		applicants = applicantstore.NewInMemory()
		notes = notestore.NewInMemory()
		shops = shopstore.NewInMemory()
		profiles = profilestore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Rate limiting. Redis shares the window across instances; a single
	// instance falls back to process-local counting.
	var counter ratelimit.Counter = ratelimit.NewMemoryCounter()
	if redisClient, err := platformredis.New(cfg.Redis); err != nil {
		log.Warn("redis unavailable, rate limiting in process", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		counter = ratelimit.NewRedisCounter(redisClient.Client)
		health["redis"] = redisClient.Health
		log.Info("rate limiting via redis")
	}
	limiter := ratelimit.New(counter, cfg.RateLimit, ratelimit.WithLogger(log))

	// Audit trail. Kafka when brokers are configured, otherwise an
	// in-process sink so the event path stays exercised.
	var sink audit.Sink = audit.NewMemorySink()
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer producer.Close()
		sink = audit.NewKafkaSink(producer)
		log.Info("audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	} else {
		log.Warn("KAFKA_BROKERS not set, audit events stay in process")
	}
	publisher := audit.NewPublisher(audit.WithLogger(log))
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	// Services.
	catalog := constants.Default()
	resolver := profile.NewResolver(profiles)
	shopSvc := shopservice.New(shops, profiles,
		shopservice.WithLogger(log),
		shopservice.WithAuditPublisher(publisher),
		shopservice.WithMetrics(shopmetrics.New()),
	)
	applicantSvc := applicantservice.New(applicants, notes, shopSvc, resolver, catalog,
		applicantservice.WithLogger(log),
		applicantservice.WithAuditPublisher(publisher),
		applicantservice.WithMetrics(applicantmetrics.New()),
		applicantservice.WithTxRunner(txRunner),
	)
	noteSvc := noteservice.New(notes, applicants, resolver,
		noteservice.WithLogger(log),
		noteservice.WithMetrics(notemetrics.New()),
	)
	uploadSvc := upload.New(cfg.Upload, upload.WithLogger(log))
	jwtSvc := auth.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	router := server.New(server.Dependencies{
		Logger:     log,
		Metrics:    platformmetrics.NewHTTP(),
		JWT:        auth.NewJWTServiceAdapter(jwtSvc),
		Limiter:    limiter,
		Applicants: applicanthandler.New(applicantSvc, log),
		Notes:      notehandler.New(noteSvc, log),
		Shops:      shophandler.New(shopSvc, log),
		Constants:  constants.NewHandler(catalog),
		Uploads:    upload.NewHandler(uploadSvc, log),
		Health:     health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// noteStore is the union of the slices the applicant and note services
// need, satisfied by both store backends.
type noteStore interface {
	applicantservice.NoteStore
	noteservice.Store
}
