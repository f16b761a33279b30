package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/auth"
	"github.com/izaman1/zamanix-dec-blog8/internal/application/blog"
	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/config"
	infraauth "github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/auth"
	httprouter "github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/handlers"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/middleware"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/lockout"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/persistence/postgres"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/security"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.Database.URL, time.Duration(cfg.Database.ConnectMaxWaitSecs)*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	passphraseGen, err := security.NewWordlistGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("load passphrase wordlist")
	}
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience)
	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSecs)

	// The privileged account lives in the store like any other; only the
	// passphrase check is skipped for it.
	if err := auth.NewSeedAdmin(userRepo, hasher).Execute(ctx, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	var emitter ports.WebhookEmitter = webhook.NewNoopEmitter()
	if cfg.Audit.WebhookURL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Audit.WebhookURL)
	}

	registerUC := auth.NewRegister(userRepo, hasher, passphraseGen, issuer, cfg.JWT.ExpirySecs)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, lockoutStore, cfg.JWT.ExpirySecs)
	profileUC := auth.NewProfile(userRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, emitter, log)
	usersHandler := handlers.NewUsersHandler(profileUC)
	postsHandler := handlers.NewPostsHandler(
		blog.NewCreatePost(postRepo),
		blog.NewListPosts(postRepo),
		blog.NewGetPost(postRepo),
		blog.NewUpdatePost(postRepo),
		blog.NewDeletePost(postRepo),
		log,
	)
	healthHandler := handlers.NewHealthHandler(pool)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)
	requireJWT := middleware.NewAuthValidator(issuer).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		UsersHandler:  usersHandler,
		PostsHandler:  postsHandler,
		HealthHandler: healthHandler,
		RequireJWT:    requireJWT,
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		IPRateLimit:   ipLimit,
		APIVersion:    "1",
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
