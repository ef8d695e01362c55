// Command server runs the talent registry API: profile and opportunity
// registration, organization verification, and compatibility evaluation
// behind one HTTP surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"talentry/internal/audit"
	auditmetrics "talentry/internal/audit/metrics"
	kafkasink "talentry/internal/audit/sink/kafka"
	auditmemory "talentry/internal/audit/store/memory"
	auditpostgres "talentry/internal/audit/store/postgres"
	"talentry/internal/device"
	directoryhandler "talentry/internal/directory/handler"
	directorymetrics "talentry/internal/directory/metrics"
	directoryservice "talentry/internal/directory/service"
	httpapi "talentry/internal/http"
	matchinghandler "talentry/internal/matching/handler"
	matchingmetrics "talentry/internal/matching/metrics"
	matchingservice "talentry/internal/matching/service"
	matchingstore "talentry/internal/matching/store"
	opportunityhandler "talentry/internal/opportunity/handler"
	opportunitymetrics "talentry/internal/opportunity/metrics"
	opportunityservice "talentry/internal/opportunity/service"
	opportunitystore "talentry/internal/opportunity/store"
	organizationhandler "talentry/internal/organization/handler"
	organizationmetrics "talentry/internal/organization/metrics"
	organizationservice "talentry/internal/organization/service"
	organizationstore "talentry/internal/organization/store"
	"talentry/internal/platform/config"
	"talentry/internal/platform/httpserver"
	"talentry/internal/platform/logger"
	platformmetrics "talentry/internal/platform/metrics"
	"talentry/internal/platform/postgres"
	platformredis "talentry/internal/platform/redis"
	"talentry/internal/ratelimit"
	ratelimitmetrics "talentry/internal/ratelimit/metrics"
	ratelimitstore "talentry/internal/ratelimit/store"
	talenthandler "talentry/internal/talent/handler"
	talentmetrics "talentry/internal/talent/metrics"
	talentservice "talentry/internal/talent/service"
	talentstore "talentry/internal/talent/store"
	"talentry/internal/token"
	"talentry/pkg/timesource"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.Auth.JWTSigningKey == "dev-secret-key-change-in-production" {
		log.Warn("using the built-in development signing key; set TALENTRY_JWT_SIGNING_KEY in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := postgres.Open(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}

	// Stores. Without Postgres everything runs in memory, which is fine for
	// development and loses all data on restart.
	var (
		talents    talentservice.Store
		listings   opportunityservice.Store
		orgs       organizationservice.Store
		matches    matchingservice.Store
		auditStore audit.Store
	)
	if pg != nil {
		talents = talentstore.NewPostgres(pg.DB)
		listings = opportunitystore.NewPostgres(pg.DB)
		orgs = organizationstore.NewPostgres(pg.DB)
		matches = matchingstore.NewPostgres(pg.Pool)
		auditStore = auditpostgres.New(pg.DB)
	} else {
		talents = talentstore.NewMemory()
		listings = opportunitystore.NewMemory()
		orgs = organizationstore.NewMemory()
		matches = matchingstore.NewMemory()
		auditStore = auditmemory.NewInMemoryStore()
		log.Warn("no postgres configured, stores are in-memory and volatile")
	}

	matchMetrics := matchingmetrics.New()
	if rdb != nil {
		matches = matchingstore.NewCache(matches, rdb.Client, cfg.Matching.CacheTTL,
			matchingstore.WithLogger(log),
			matchingstore.WithMetrics(matchMetrics),
		)
		log.Info("compatibility reads served through redis", "ttl", cfg.Matching.CacheTTL)
	}

	// Audit pipeline: async buffer so emission never blocks a request, Kafka
	// mirroring when brokers are configured.
	auditOpts := []audit.Option{
		audit.WithAsyncBuffer(1024),
		audit.WithLogger(log),
		audit.WithMetrics(auditmetrics.New()),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafkasink.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.Error("failed to connect kafka audit sink", "error", err)
			os.Exit(1)
		}
		auditOpts = append(auditOpts, audit.WithSink(sink))
		log.Info("audit events mirrored to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore, auditOpts...)

	clock := timesource.System{}

	talentSvc := talentservice.New(talents, clock,
		talentservice.WithLogger(log),
		talentservice.WithAuditPublisher(auditor),
		talentservice.WithMetrics(talentmetrics.New()),
	)
	opportunitySvc := opportunityservice.New(listings, clock,
		opportunityservice.WithLogger(log),
		opportunityservice.WithAuditPublisher(auditor),
		opportunityservice.WithMetrics(opportunitymetrics.New()),
	)
	organizationSvc := organizationservice.New(orgs, clock,
		organizationservice.WithLogger(log),
		organizationservice.WithAuditPublisher(auditor),
		organizationservice.WithMetrics(organizationmetrics.New()),
	)
	matchingSvc := matchingservice.New(matches, talents, listings, clock,
		matchingservice.WithLogger(log),
		matchingservice.WithAuditPublisher(auditor),
		matchingservice.WithMetrics(matchMetrics),
	)
	directorySvc := directoryservice.New(talents, listings, orgs, matches,
		directoryservice.WithMetrics(directorymetrics.New()),
	)

	var limiterStore ratelimit.Store
	if rdb != nil {
		limiterStore = ratelimitstore.NewRedis(rdb.Client)
	} else {
		limiterStore = ratelimitstore.NewMemory()
	}
	limiter := ratelimit.NewMiddleware(limiterStore, cfg.RateLimit, log,
		ratelimit.WithMetrics(ratelimitmetrics.New()),
		ratelimit.WithAuditPublisher(auditor),
	)

	var readiness []httpapi.Check
	if pg != nil {
		readiness = append(readiness, httpapi.Check{Name: "postgres", Probe: pg.Health})
	}
	if rdb != nil {
		readiness = append(readiness, httpapi.Check{Name: "redis", Probe: rdb.Health})
	}

	router := httpapi.New(httpapi.Deps{
		Logger:         log,
		Metrics:        platformmetrics.NewHTTP(),
		Tokens:         token.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
		Devices:        device.NewService(cfg.Auth.DeviceFingerprints),
		AdminTokenHash: cfg.Server.AdminTokenHash,
		Limiter:        limiter,

		Talent:       talenthandler.New(talentSvc, log),
		Opportunity:  opportunityhandler.New(opportunitySvc, log),
		Organization: organizationhandler.New(organizationSvc, log),
		Matching:     matchinghandler.New(matchingSvc, log),
		Directory:    directoryhandler.New(directorySvc, log),

		Readiness: readiness,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("registry API listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
	}

	// Drain the audit buffer before the backends it writes to go away.
	auditor.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if pg != nil {
		pg.Close()
	}
}
