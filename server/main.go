package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/equinoxlabs/content-engine/internal/config"
	"github.com/equinoxlabs/content-engine/internal/gemini"
	"github.com/equinoxlabs/content-engine/internal/logger"
	"github.com/equinoxlabs/content-engine/internal/pipeline"
	"github.com/equinoxlabs/content-engine/internal/seo"
	"github.com/equinoxlabs/content-engine/internal/store"
)

func main() {
	log := logger.New("server")
	cfg, err := config.LoadServer()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, err := store.Open(cfg.StorePath, log)
	if err != nil {
		log.Error("open store", slog.Any("err", err))
		os.Exit(1)
	}

	gen, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.PublisherName, log)
	if err != nil {
		log.Error("init gemini", slog.Any("err", err))
		os.Exit(1)
	}
	defer gen.Close()

	pipe := pipeline.New(
		st,
		gen,
		seo.NewKeywordGenerator(nil),
		seo.NewLinkScorer(nil),
		cfg.SeedBatchSize,
		cfg.GenerateTimeout,
		log,
	)

	// Boot sequence: an empty store seeds itself with a default batch.
	// Runs in the background so the catalog serves immediately and
	// reports appear one at a time.
	go func() {
		if _, err := pipe.Autorun(ctx); err != nil && !errors.Is(err, pipeline.ErrBusy) {
			log.Error("autorun", slog.Any("err", err))
		}
	}()

	srv := &server{log: log, cfg: cfg, store: st, pipe: pipe}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/home", srv.handleHome)
	r.Get("/reports", srv.handleListReports)
	r.Get("/reports/{slug}", srv.handleGetReport)
	r.Get("/categories", srv.handleCategories)
	r.Get("/dashboard/events", srv.handleEvents)
	r.Post("/dashboard/generate", srv.handleGenerate)
	r.Get("/sitemap.xml", srv.handleSitemap)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info("server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
