package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/config"
	apphttp "bookcatalog/internal/http"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := config.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer backend.Close()

	logger := log.Default()
	svc := usecase.NewCatalogService(backend.Store, append(cfg.ServiceOptions(), usecase.WithLogger(logger))...)
	logger.Printf("catalog atomic_writes=%t store=%s", svc.AtomicWrites(), cfg.StoreDriver)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHandler(cfg, logger, svc, backend.Ready),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func newHandler(cfg config.Config, logger *log.Logger, svc *usecase.CatalogService, ready apphttp.ReadyFunc) http.Handler {
	router := apphttp.NewRouter(apphttp.NewCatalogHandler(svc), ready)
	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLog(logger),
		apphttp.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
