package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kurihiro0119/github-org-pages/internal/api"
	"github.com/kurihiro0119/github-org-pages/internal/config"
	"github.com/kurihiro0119/github-org-pages/internal/logging"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
	"github.com/kurihiro0119/github-org-pages/internal/storage/postgres"
	"github.com/kurihiro0119/github-org-pages/internal/storage/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	// Initialize storage when archiving is enabled
	var store storage.Storage
	if cfg.Archive {
		switch cfg.StorageType {
		case "postgres":
			store, err = postgres.NewPostgresStorage(cfg.PostgresURL)
			if err != nil {
				log.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
			}
		default:
			store, err = sqlite.NewSQLiteStorage(cfg.SQLitePath)
			if err != nil {
				log.Fatalf("Failed to initialize SQLite storage: %v", err)
			}
		}
		defer store.Close()
	}

	// Setup routes
	router := api.SetupRoutes(api.NewHandler(cfg.IndexPath, store))

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	fmt.Printf("Starting preview server on %s\n", addr)
	fmt.Printf("Serving %s (archive: %t)\n", cfg.IndexPath, store != nil)

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
