package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/config"
	"github.com/fantabuste/envelope-server-go/internal/database"
	"github.com/fantabuste/envelope-server-go/internal/handler"
	"github.com/fantabuste/envelope-server-go/internal/i18n"
	"github.com/fantabuste/envelope-server-go/internal/middleware"
	"github.com/fantabuste/envelope-server-go/internal/redis"
	"github.com/fantabuste/envelope-server-go/internal/repository"
	"github.com/fantabuste/envelope-server-go/internal/service"
	"github.com/fantabuste/envelope-server-go/internal/sse"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// A missing .env is fine; real deployments set the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := cfg.IsProduction()
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	db, err := database.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("database connected")

	var redisClient *redis.Client
	var limiter middleware.Limiter = middleware.NewMemoryRateLimiter()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		limiter = service.NewRateLimiter(redisClient.Client)
		log.Info().Msg("redis connected")
	} else {
		log.Info().Msg("redis not configured, using in-process events and rate limits")
	}

	sessionRepo := repository.NewSessionRepository(db.DB)
	participantRepo := repository.NewParticipantRepository(db.DB)

	broker := sse.NewBroker(redisClient)
	defer broker.Close()

	sessionService := service.NewSessionService(sessionRepo, participantRepo, broker, cfg.EncryptionKey)
	participantService := service.NewParticipantService(sessionRepo, participantRepo, broker, cfg.EncryptionKey)

	renderer, err := handler.NewRenderer(i18n.NewResolver(cfg.DefaultLanguage))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}

	r := handler.NewRouter(handler.Dependencies{
		SessionService:     sessionService,
		ParticipantService: participantService,
		Broker:             broker,
		Identity:           middleware.NewIdentityCookies(cfg.IdentitySecret, isProduction, config.IdentityCookieMaxAge),
		Renderer:           renderer,
		DB:                 db,
		Limiter:            limiter,
		RateLimits: handler.RateLimits{
			Create: cfg.CreateRateLimitPerMin,
			Join:   cfg.JoinRateLimitPerMin,
			Reveal: cfg.RevealRateLimitPerMin,
			Window: cfg.RateWindow(),
		},
		IsProduction: isProduction,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Bool("production", isProduction).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	// Close streams first so Shutdown does not wait on them.
	broker.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
