package main

import (
	"context"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/brightsmile-dental/clinic-scheduling/libs/config"
	"github.com/brightsmile-dental/clinic-scheduling/libs/db"
	"github.com/brightsmile-dental/clinic-scheduling/libs/httpx"
	"github.com/brightsmile-dental/clinic-scheduling/libs/kafkax"
	otelx "github.com/brightsmile-dental/clinic-scheduling/libs/otel"
	"github.com/brightsmile-dental/clinic-scheduling/libs/runtime"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/availability"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/handlers"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/outbox"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/planner"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/schedule"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "schedule-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	// Clinic-branch time, never the process-local zone; a remote booker's
	// browser zone is irrelevant to the slot grid.
	loc, err := time.LoadLocation(config.String("CLINIC_TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		logger.Error("invalid clinic timezone", "err", err)
		panic(err)
	}
	hours := availability.ClinicHours(loc)

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL, db.Options{})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	repo := storage.NewAppointmentRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	var provider schedule.Provider = schedule.NewStoreProvider(repo, loc)
	if upstream := strings.TrimSpace(config.String("SCHEDULE_API_URL", "")); upstream != "" {
		provider = schedule.NewClient(upstream, 5*time.Second, logger)
		logger.Info("using remote schedule api", "url", upstream)
	}
	dayPlanner := planner.New(provider, hours, logger)

	scheduleHandler := handlers.NewScheduleHandler(repo, loc, logger)
	slotsHandler := handlers.NewSlotsHandler(dayPlanner, logger)
	bookingHandler := handlers.NewBookingHandler(repo, outboxRepo, hours, logger)

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/appointments/dentists/day", scheduleHandler.DentistsDay)
	mux.HandleFunc("/api/v1/public/slots/day", slotsHandler.Day)
	mux.HandleFunc("/api/v1/public/quick-booking", bookingHandler.QuickBooking)
	mux.HandleFunc("/api/v1/public/consultation", bookingHandler.Consultation)

	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	var rateLimitMW httpx.Middleware
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	bodyLimit := int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))
	requestTimeout := time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   config.List("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
			AllowCredentials: config.Bool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(bodyLimit),
		httpx.WithTimeout(requestTimeout),
		rateLimitMW,
	)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           otelhttp.NewHandler(handler, "schedule"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "clinic_tz", loc.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
