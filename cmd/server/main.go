package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wiring/internal/config"
	"wiring/internal/handler"
	"wiring/internal/hub"
	"wiring/internal/repository/sqlite"
	"wiring/internal/service"
	"wiring/internal/watcher"
)

func main() {
	// Command line flags override the config file
	configPath := flag.String("config", "", "Config file path")
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting wiring server...")

	var (
		cfg    *config.Config
		loaded string
		err    error
	)
	if *configPath != "" {
		cfg, loaded, err = config.LoadFromPath(*configPath)
	} else {
		cfg, loaded, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if loaded != "" {
		log.Printf("Config loaded: %s", loaded)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("Invalid translation settings: %v", err)
	}

	// Initialize SQLite statement store
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event bus feeds the SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New()
	go sseHub.Run(ctx)
	go sseHub.Forward(ctx, eventBus)

	engine := service.NewEngine(opts...)
	pipeline := service.NewPipeline(engine, repo, eventBus)
	translationHandler := handler.NewTranslationHandler(engine, pipeline)

	// Keep the store in step with a watched ontology file
	if cfg.Watch.Path != "" {
		reload := func(ctx context.Context, path string) {
			f, err := os.Open(path)
			if err != nil {
				log.Printf("Failed to open %s: %v", path, err)
				return
			}
			defer f.Close()
			result, err := pipeline.Reload(ctx, cfg.Watch.Format, f)
			if err != nil {
				log.Printf("Failed to reload %s: %v", path, err)
				return
			}
			log.Printf("Reloaded %d statements from %s", result.Statements, path)
		}
		reload(ctx, cfg.Watch.Path)

		go func() {
			if err := watcher.New(cfg.Watch.Path, reload).Watch(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Watcher stopped: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	translationHandler.Register(mux)
	mux.Handle("GET /api/events", sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
