package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"spaceexplorer/internal/audio"
	"spaceexplorer/internal/config"
	"spaceexplorer/internal/game"
	"spaceexplorer/internal/i18n"
	"spaceexplorer/internal/scheduler"
	"spaceexplorer/internal/session"
	"spaceexplorer/internal/telemetry"
	"spaceexplorer/internal/web"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := game.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog %s: %v", cfg.CatalogPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		log.Fatal(err)
	}
	for _, tag := range bundle.Supported()[1:] {
		if missing := bundle.Missing(tag); len(missing) > 0 {
			log.Printf("locale %s is missing %d keys: %v", tag, len(missing), missing)
		}
	}
	defaultLocale, err := language.Parse(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("default locale %q: %v", cfg.DefaultLocale, err)
	}

	tmpl, err := web.ParseTemplates("templates")
	if err != nil {
		log.Fatal(err)
	}

	sounds := audio.NewService(cfg.SampleRate)
	sounds.Warm()
	sched := scheduler.New()

	srv := &web.Server{
		Engine:        &game.Engine{Catalog: catalog},
		Store:         session.NewMemoryStore[web.PlayerState](),
		Tmpl:          tmpl,
		Scheduler:     sched,
		Audio:         sounds,
		I18n:          bundle,
		Tracer:        telemetry.NewTracer(nil),
		Live:          web.NewHub(),
		AssetsDir:     cfg.AssetsDir,
		StartDelay:    cfg.StartDelay,
		SuccessDelay:  cfg.SuccessDelay,
		DefaultLocale: defaultLocale,
		SecureCookies: cfg.SecureCookies,
		Debug:         cfg.Debug,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("listening on %s (%d planets)", cfg.Addr, catalog.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	sched.Stop()
	if err := sounds.Close(); err != nil {
		log.Printf("audio close: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
}
