package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"databreach-registry/internal/config"
	"databreach-registry/internal/infra/adapter/persistence"
	"databreach-registry/internal/infra/db"
	"databreach-registry/internal/observability/logging"
	"databreach-registry/internal/observability/tracing"
	"databreach-registry/internal/resilience/circuitbreaker"
	breachUC "databreach-registry/internal/usecase/breach"

	hhttp "databreach-registry/internal/handler/http"
	hauth "databreach-registry/internal/handler/http/auth"
	hbreach "databreach-registry/internal/handler/http/breach"
	"databreach-registry/internal/handler/http/middleware"
	"databreach-registry/internal/handler/http/requestid"
	authservice "databreach-registry/internal/service/auth"

	_ "databreach-registry/docs" // swagger docs
)

// @title           Data Breach Registry API
// @version         1.0
// @description     Registry of publicly reported data breaches. Each breach belongs to an entity
// @description     (the breached organization, tagged with organization types) and cites media sources.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Static API key from API_KEYS. "Authorization: Api-Key {key}" is accepted as well.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT from POST /auth/token, sent as "Bearer {token}".

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

func main() {
	_ = godotenv.Load()
	logger := initLogger()

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	validateAdminCredentials(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, txm := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, database, txm)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(ctx, logger, cfg, components); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the process-wide structured logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateAdminCredentials refuses to start with a weak operator password when token
// issuing is switched on.
func validateAdminCredentials(logger *slog.Logger, cfg config.APIConfig) {
	if !cfg.TokenIssuingEnabled() {
		logger.Info("token endpoint disabled: ADMIN_USER or JWT_SECRET not set")
		return
	}
	if err := hauth.ValidateAdminPassword(cfg.AdminPassword); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initDatabase opens the database, applies the schema and wraps the transaction runner
// in the circuit breaker.
func initDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, *circuitbreaker.TxManager) {
	dbCfg, err := db.ConfigFromEnv()
	if err != nil {
		logger.Error("invalid database configuration", slog.Any("error", err))
		os.Exit(1)
	}
	factory, err := persistence.NewFactory(dbCfg.Driver)
	if err != nil {
		logger.Error("invalid database configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Open(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database, dbCfg.Driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}

	txm := circuitbreaker.NewTxManager(db.NewTxManager(database, factory), circuitbreaker.TxConfig())
	return database, txm
}

// ServerComponents holds what runServer needs besides the config.
type ServerComponents struct {
	Handler  http.Handler
	Limiters []*middleware.RateLimiter
}

// setupServer builds the routes and the middleware chain.
func setupServer(logger *slog.Logger, cfg config.APIConfig, database *sql.DB, txm *circuitbreaker.TxManager) (*ServerComponents, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	ipExtractor := middleware.NewIPExtractor(proxies)
	if len(proxies) > 0 {
		logger.Info("rate limiting: trusted proxy mode enabled", slog.Int("trusted_proxies_count", len(proxies)))
	} else {
		logger.Info("rate limiting: using RemoteAddr, proxy headers ignored")
	}

	writeLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Name:      "write",
		RPS:       cfg.WriteRPS,
		Burst:     cfg.WriteBurst,
		Extractor: ipExtractor,
		Filter:    func(r *http.Request) bool { return !hauth.IsSafeMethod(r.Method) },
	})
	tokenLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Name:      "token",
		RPS:       cfg.TokenRPS,
		Burst:     cfg.TokenBurst,
		Extractor: ipExtractor,
	})

	issuer := hauth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authn := &hauth.Authenticator{
		Keys:   hauth.NewKeySet(cfg.APIKeys),
		Tokens: issuer,
		Logger: logger,
	}
	logger.Info("write authentication configured",
		slog.Int("api_keys", authn.Keys.Len()),
		slog.Bool("jwt", issuer.Enabled()))

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Breaker: txm, Version: cfg.Version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	if cfg.TokenIssuingEnabled() {
		authSvc := authservice.NewAuthService(hauth.NewBasicAuthProvider(cfg.AdminUser, cfg.AdminPassword))
		mux.Handle("POST /auth/token", tokenLimiter.Middleware(hauth.TokenHandler(authSvc, issuer)))
	}

	svc := &breachUC.Service{Tx: txm}
	hbreach.Register(mux, svc, func(h http.Handler) http.Handler {
		return writeLimiter.Middleware(authn.RequireWrite(h))
	})

	corsCfg := middleware.DefaultCORSConfig(cfg.CORSOrigins, logger)
	logger.Info("CORS configured", slog.Any("allowed_origins", cfg.CORSOrigins))

	// CORS → Request ID → Tracing → Recovery → Logging → Body Limit → Metrics
	handler := hhttp.Chain(mux,
		middleware.CORS(corsCfg),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		hhttp.MetricsMiddleware,
	)

	return &ServerComponents{
		Handler:  handler,
		Limiters: []*middleware.RateLimiter{writeLimiter, tokenLimiter},
	}, nil
}

// runServer serves until ctx is canceled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.APIConfig, components *ServerComponents) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris
		BaseContext: func(_ net.Listener) context.Context {
			return gctx
		},
	}

	for _, rl := range components.Limiters {
		g.Go(func() error {
			return rl.RunCleanup(gctx, limiterCleanupInterval, limiterIdleTimeout, logger)
		})
	}

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
