package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidfults/vidmap/config"
	"github.com/davidfults/vidmap/internal/api"
	"github.com/davidfults/vidmap/internal/discovery"
	"github.com/davidfults/vidmap/internal/sitemap"
	"github.com/davidfults/vidmap/internal/storage"
	"github.com/davidfults/vidmap/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize database tables
	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	// Initialize API server
	server := api.NewServer(cfg.Server.Port, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First discovery run on startup, then periodic refreshes
	go func() {
		runDiscovery(ctx, store, cfg)

		ticker := time.NewTicker(cfg.GetDiscoveryInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.Println("Starting periodic discovery...")
				runDiscovery(ctx, store, cfg)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start the API server
	go func() {
		log.Printf("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	// Wait for shutdown
	waitForShutdown(cancel, server)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Database.URL != "" {
		return storage.NewPostgresStore(cfg.Database.URL)
	}
	return storage.NewSQLiteStore(cfg.Database.Path)
}

func runDiscovery(ctx context.Context, store storage.Store, cfg *config.Config) {
	logger, err := utils.NewRunLogger(cfg.Site.Name)
	if err != nil {
		log.Printf("Failed to create run logger: %v", err)
		return
	}
	defer logger.Close()

	d := discovery.NewDiscoverer(store, &discovery.Config{
		SiteName:       cfg.Site.Name,
		SeedURLs:       cfg.Discovery.SeedURLs,
		AllowedDomains: cfg.Discovery.AllowedDomains,
		UserAgent:      cfg.Discovery.UserAgent,
		MaxDepth:       cfg.Discovery.MaxDepth,
	}, logger)

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if err := d.Run(runCtx); err != nil {
		logger.LogError("Discovery failed: %v", err)
		return
	}

	if cfg.Output.Path != "" {
		if err := writeSitemap(ctx, store, cfg.Output.Path); err != nil {
			logger.LogError("Failed to write sitemap: %v", err)
			return
		}
		logger.LogInfo("Sitemap written to %s", cfg.Output.Path)
	}
}

func writeSitemap(ctx context.Context, store storage.Store, path string) error {
	const pageSize = 500

	sm := sitemap.New()
	for offset := 0; ; offset += pageSize {
		entries, err := store.ListEntries(ctx, pageSize, offset)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			break
		}
		for _, entry := range entries {
			u, err := entry.SitemapURL()
			if err != nil {
				log.Printf("Skipping entry %s: %v", entry.Loc, err)
				continue
			}
			sm.Add(u)
		}
	}

	return sm.WriteFile(path)
}

func waitForShutdown(cancel context.CancelFunc, server *api.Server) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")
	cancel()

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
