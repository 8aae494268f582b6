package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wonnda/internal/config"
	"wonnda/internal/db"
	"wonnda/internal/email"
	apihttp "wonnda/internal/http"
	"wonnda/internal/metrics"
	"wonnda/internal/repository"
	"wonnda/internal/service"
)

const (
	otpWindow      = 10 * time.Minute
	otpMaxPerEmail = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	codeRepo := repository.NewPgVerificationCodeRepository(pool)
	accountRepo := repository.NewPgAccountRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	draftRepo := repository.NewPgOnboardingRepository(pool)

	var (
		otpLimiter   = service.NewOTPRateLimiter(otpWindow, otpMaxPerEmail)
		sessionStore service.SessionStore = repository.NewPgSessionRepository(pool)
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-process limiter and postgres sessions", zap.Error(err))
		} else {
			otpLimiter = service.NewRedisOTPRateLimiter(redisClient, logger, otpWindow, otpMaxPerEmail)
			sessionStore = service.NewRedisSessionStore(redisClient)
		}
		cancel()
	}

	emailSender := newEmailSender(cfg, logger)

	var (
		recorder       metrics.Recorder = metrics.Nop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewCollector(reg)
		metricsHandler = metrics.Handler(reg)
	}

	accountSvc := service.NewAccountService(logger, userRepo, codeRepo, accountRepo, emailSender, otpLimiter,
		service.WithOTPEcho(!cfg.IsProduction()),
		service.WithMetrics(recorder),
	)
	credentialSvc := service.NewCredentialService(logger, userRepo, recorder)
	sessionSvc := service.NewSessionService(cfg.SessionSecret, sessionStore)
	profileSvc := service.NewProfileService(logger, userRepo, profileRepo)
	onboardingSvc := service.NewOnboardingService(logger, draftRepo, accountSvc)

	secureCookies := cfg.IsProduction()
	handlers := apihttp.Handlers{
		Auth:       apihttp.NewAuthHandler(logger, accountSvc, credentialSvc, sessionSvc, emailSender, secureCookies, cfg.IsDevelopment()),
		Onboarding: apihttp.NewOnboardingHandler(logger, onboardingSvc, sessionSvc, secureCookies),
		Profile:    apihttp.NewProfileHandler(logger, profileSvc),
	}

	authLimiter := apihttp.NewIPRateLimiter(logger, cfg.AuthRatePerMinute)
	defer authLimiter.Stop()

	router := apihttp.NewRouter(logger, sessionSvc, handlers, apihttp.RouterOptions{
		Recorder:    recorder,
		Metrics:     metricsHandler,
		AuthLimiter: authLimiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newEmailSender elige Resend si hay API key, si no SMTP, y si no un sender deshabilitado
// que falla cada envío.
func newEmailSender(cfg *config.Config, logger *zap.Logger) email.Sender {
	if cfg.ResendAPIKey != "" {
		sender, err := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		if err == nil {
			return sender
		}
		logger.Warn("resend sender init failed", zap.Error(err))
	}
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err == nil {
			return sender
		}
		logger.Warn("smtp sender init failed", zap.Error(err))
	}
	logger.Warn("email sender not configured, verification codes cannot be delivered")
	return email.NewDisabledSender("email sender not configured")
}
