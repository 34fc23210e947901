package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/config"
	"bitbucket.org/mmdatafocus/daily_report_backend/handlers"
	"bitbucket.org/mmdatafocus/daily_report_backend/middlewares"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/repositories"
	"bitbucket.org/mmdatafocus/daily_report_backend/services"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"bitbucket.org/mmdatafocus/daily_report_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("daily-report-backend")

func main() {
	settings := config.LoadSettings()
	logger := config.NewLogger(settings.LogLevel)
	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start listening immediately so the startup probe passes.
	// Until DB/Redis are ready, app endpoints answer 503.
	var app atomic.Pointer[gin.Engine]
	srv := &http.Server{
		Addr: ":" + settings.Port,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if router := app.Load(); router != nil {
				router.ServeHTTP(w, r)
				return
			}
			if r.URL.Path == "/healthz" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	db, err := config.ConnectDatabaseWithRetry(sigCtx, settings.DB)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "database"}).Fatal("database not connected: " + err.Error())
	}
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	rdb, redisLock, err := config.ConnectRedisWithRetry(sigCtx, settings.Redis)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "redis"}).Fatal("redis not connected: " + err.Error())
	}
	defer func() { _ = rdb.Close() }()

	// AutoMigrate can lock tables; run it as a separate job by setting SKIP_MIGRATIONS.
	if !settings.SkipMigrations {
		if err := models.MigrateTable(db); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Fatal("migration failed: " + err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}
	setReadCommitted(sigCtx, db, logger)

	clock, err := utils.NewSystemClock(settings.Timezone)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "timezone"}).Fatal("invalid APP_TIMEZONE: " + err.Error())
	}

	userRepo := repositories.NewCachedUserRepository(repositories.NewUserRepository(db), rdb, settings.TokenLifespan)
	store := repositories.NewStore(db, repositories.WithUserRepository(userRepo))
	jwt := utils.NewJwtManager(settings.ApiSecret, settings.TokenLifespan)

	h := handlers.NewHandler(handlers.Options{
		Reports:      services.NewReportService(store, clock),
		Comments:     services.NewCommentService(store, clock),
		Customers:    services.NewCustomerService(store, settings.PhoneRegion),
		Users:        services.NewUserService(userRepo),
		Auth:         services.NewAuthService(userRepo, jwt, repositories.NewSessionRepository(rdb), clock),
		Tracer:       tracer,
		Logger:       logger,
		CookieSecure: settings.CookieSecure,
	})

	routerOptions := handlers.RouterOptions{
		Repositories:   store,
		AllowedOrigins: settings.AllowedOrigins,
	}
	if settings.RateLimitEnabled {
		limiter := middlewares.NewRateLimiter(rdb, int64(settings.RateLimitMaxRequests), settings.RateLimitWindow)
		routerOptions.Middlewares = append(routerOptions.Middlewares, limiter.Middleware())
	}
	routerOptions.Middlewares = append(routerOptions.Middlewares, customErrorLogger(logger))
	app.Store(handlers.NewRouter(h, routerOptions))

	// Outbox dispatcher publishes AFTER commit; events simply accumulate when no topic is set.
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	if settings.PubSub.Topic != "" {
		publisher, err := config.NewPubSubPublisher(sigCtx, settings.PubSub)
		if err != nil {
			logger.WithFields(logrus.Fields{"field": "pubsub"}).Error("pubsub disabled: " + err.Error())
		} else {
			defer func() { _ = publisher.Close() }()
			dispatcher := workflow.NewOutboxDispatcher(store.Outbox(), publisher, logger)
			dispatcher.Locker = redisLock
			go dispatcher.Run(dispatcherCtx)
		}
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on :", settings.Port)
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop background workers first so they don't start new work while we're draining.
	cancelDispatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// setReadCommitted retries until the session isolation level is applied or ctx is done.
func setReadCommitted(ctx context.Context, db *gorm.DB, logger logrus.FieldLogger) {
	for attempt := 1; ; attempt++ {
		err := db.WithContext(ctx).Exec("SET SESSION TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
		if err == nil {
			return
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "database",
			"attempt": attempt,
		}).Warn("failed to set isolation level; retrying in " + sleep.String() + ": " + err.Error())
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// customErrorLogger logs only requests that recorded gin errors
func customErrorLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}
