package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/grindtracker/internal/auth"
	"github.com/mmynk/grindtracker/internal/config"
	"github.com/mmynk/grindtracker/internal/httpapi"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/service"
	"github.com/mmynk/grindtracker/internal/storage"
	"github.com/mmynk/grindtracker/internal/storage/postgres"
	"github.com/mmynk/grindtracker/internal/storage/sqlite"
	"github.com/mmynk/grindtracker/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.StoreDriver)

	// Core managers
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	sessions := ledger.NewSessionLedger(store, logger)
	stats := ledger.NewStatsAggregator(store, logger, nil)
	notes := ledger.NewNoteBook(store, logger)
	settings := ledger.NewSettingsManager(store, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders:   []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Register Connect services
	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(tokens, logger, service.PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	)
	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(service.NewAuthServiceHandler(service.NewAuthService(authenticator, tokens, logger), interceptors))
	mount(service.NewSessionServiceHandler(service.NewSessionService(sessions, stats, logger), interceptors))
	mount(service.NewNoteServiceHandler(service.NewNoteService(notes, logger), interceptors))
	mount(service.NewSettingsServiceHandler(service.NewSettingsService(settings, logger), interceptors))

	// REST surface for the browser frontend
	r.Group(func(r chi.Router) {
		r.Use(metrics.Handler)
		api := &httpapi.API{
			Authenticator: authenticator,
			Tokens:        tokens,
			Sessions:      sessions,
			Stats:         stats,
			Notes:         notes,
			Settings:      settings,
			Logger:        logger,
			AuthRateLimit: cfg.AuthRateLimit,
		}
		api.Routes(r)
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		logger.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	logger.Info("Serving static files", "path", staticDir)
	r.Handle("/*", httpapi.StaticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
