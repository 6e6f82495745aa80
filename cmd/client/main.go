package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crosschain-donation/config"
	"crosschain-donation/internal/adapter/evm"
	httpHandler "crosschain-donation/internal/adapter/http/handler"
	"crosschain-donation/internal/adapter/http/middleware"
	pgStorage "crosschain-donation/internal/adapter/storage/postgres"
	redisStorage "crosschain-donation/internal/adapter/storage/redis"
	"crosschain-donation/internal/adapter/storage/seed"
	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/internal/observability"
	"crosschain-donation/internal/registry"
	"crosschain-donation/internal/service"
	"crosschain-donation/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml or ./config/config.yaml)")
	issueToken := flag.String("issue-token", "", "print a control-API token for this subject and exit")
	importBaseline := flag.Bool("import-baseline", false, "copy the embedded baseline catalog into PostgreSQL and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if *issueToken != "" {
		if err := printToken(cfg.Auth, *issueToken); err != nil {
			log.Fatal().Err(err).Msg("Failed to issue token")
		}
		return
	}

	ctx := context.Background()

	if *importBaseline {
		if err := importCatalog(ctx, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("Baseline import failed")
		}
		return
	}

	reg, err := registry.FromConfig(cfg.Chains)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid chain configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("source", reg.Source().Name).
		Str("target", reg.Target().Name).
		Msg("Starting Cross-Chain Donation Client")

	var healthCheckers []ports.HealthChecker

	// Optional Redis: read cache and rate limiting
	var (
		readCache      ports.ReadCache
		rateLimitStore middleware.Limiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		readCache = redisStorage.NewReadCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Baseline catalog
	var baseline ports.BaselineRepository
	switch cfg.Baseline.Source {
	case config.BaselineSourcePostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		
		repo := pgStorage.NewBaselineRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare baseline schema")
		}
		baseline = repo
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	default:
		catalog, err := seed.Load(cfg.Baseline.DisplayDecimals)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load baseline catalog")
		}
		baseline = catalog
	}

	// Read-only client for the target chain's vault
	backend, err := evm.Dial(ctx, reg.Target().RPCURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to dial target RPC")
	}
	reader := evm.NewReader(backend, cfg.Reads.RateLimit, cfg.Reads.Burst, cfg.Reads.Timeout, reg.Target().Name)
	defer reader.Close()
	healthCheckers = append(healthCheckers, reader)

	// Wallet provider. Without a key the client runs read-only and every
	// wallet operation reports that no provider was found.
	var provider ports.WalletProvider
	if cfg.Wallet.PrivateKey != "" {
		keyed, err := evm.NewKeyedProvider(
			cfg.Wallet.PrivateKey,
			[]domain.NetworkDescriptor{reg.Source().Descriptor()},
			evm.Dial,
			cfg.Wallet.PollInterval,
			log,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize wallet")
		}
		defer keyed.Close()
		provider = keyed
		log.Info().Str("address", keyed.Address().Hex()).Msg("Local wallet loaded")
	} else {
		log.Warn().Msg("No wallet key configured; donations are disabled")
	}

	// Core services
	runCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	sessions := service.NewSessionManager(provider, reg, log)
	if _, err := sessions.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("Could not restore wallet session")
	}
	go sessions.Watch(runCtx)

	donations := service.NewDonationOrchestrator(sessions, provider, reg, cfg.Donation, observability.Donation(), log)
	reads := service.NewChainQueryService(reader, reg, readCache, cfg.Reads.CacheTTL, observability.Reads(), log)

	var tokenSvc ports.TokenService
	if cfg.Auth.Secret != "" {
		tokenSvc = service.NewJWTTokenService(cfg.Auth.Secret, cfg.Auth.Expiry, cfg.Auth.Issuer)
	} else {
		log.Warn().Msg("auth.secret is empty; control API is unauthenticated")
	}

	if doc, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(doc)
		log.Info().Msg("control API docs served at /swagger")
	} else {
		log.Warn().Err(err).Msg("openapi.yaml not found, /swagger disabled")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Session:        sessions,
		Donations:      donations,
		Reads:          reads,
		Baseline:       baseline,
		Registry:       reg,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Decimals:       cfg.Baseline.DisplayDecimals,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func printToken(cfg config.AuthConfig, subject string) error {
	if cfg.Secret == "" {
		return errors.New("auth.secret is not set")
	}
	token, expiry, err := service.NewJWTTokenService(cfg.Secret, cfg.Expiry, cfg.Issuer).Generate(subject)
	if err != nil {
		return err
	}
	fmt.Printf("%s\nexpires %s\n", token, expiry.UTC().Format(time.RFC3339))
	return nil
}

func importCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	catalog, err := seed.Load(cfg.Baseline.DisplayDecimals)
	if err != nil {
		return err
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := pgStorage.NewBaselineRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	events, donations := catalog.Events(), catalog.Donations()
	if err := repo.Import(ctx, events, donations); err != nil {
		return err
	}
	log.Info().Int("events", len(events)).Int("donations", len(donations)).Msg("Baseline imported")
	return nil
}
