package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oakwood-site/internal/content"
	"oakwood-site/internal/live"
	"oakwood-site/internal/platform/config"
	"oakwood-site/internal/platform/db"
	"oakwood-site/internal/platform/httpclient"
	"oakwood-site/internal/platform/logger"
	"oakwood-site/internal/platform/metrics"
	"oakwood-site/internal/proxy"
	"oakwood-site/internal/site"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()
	cfg := config.FromEnv()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	met := metrics.New()

	sqlDB, err := db.Open(cfg.DBPath, log)
	if err != nil {
		log.Error("database open failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	fetcher := proxy.NewFetcher(cfg.UpstreamURL, proxy.FetcherOptions{
		Client:   httpclient.New(cfg.UpstreamTimeout),
		DB:       sqlDB,
		Logger:   log,
		Recorder: met,
	})
	provider := content.NewProvider(cfg.ContentDir, log, content.WithRemote(fetcher))

	registry := live.NewRegistry(provider, live.Options{
		Interval: cfg.CarouselInterval,
		Recorder: met,
		OnCount:  met.SetCarouselSessions,
		Logger:   log,
	})

	watcher := content.NewWatcher(provider, log)
	watcher.Subscribe(func(content.Document) { met.IncContentReloads() })
	watcher.Subscribe(registry.Reload)
	if err := watcher.Start(); err != nil {
		// Pages still render; edits just need a restart.
		log.Warn("content watcher unavailable", "dir", cfg.ContentDir, "error", err)
	}

	pages := site.NewHandler(provider, site.Brand{Name: cfg.SiteName, URL: cfg.SiteURL}, log)
	api := proxy.NewHandler(fetcher, log)
	ws := live.NewHandler(registry, cfg.AllowedOrigins, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetCarouselSessions(registry.Count()) }).ServeHTTP(w, r)
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{"Accept"},
		}))
		r.Get("/home-content", api.HomeContent)
	})
	r.Get("/ws/carousel", ws.ServeWS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	pages.Routes(r)

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", cfg.Port,
		"content_dir", cfg.ContentDir,
		"upstream_url", cfg.UpstreamURL,
		"carousel_interval", cfg.CarouselInterval.String(),
		"log_level", cfg.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	// Hijacked websocket connections are not tracked by Shutdown.
	registry.CloseAll()
	if err := watcher.Close(); err != nil {
		log.Debug("content watcher close", "error", err)
	}

	log.Info("server stopped")
}
