package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"locationservice/internal/config"
	"locationservice/internal/db"
	"locationservice/internal/jobs"
	"locationservice/internal/locator"
	"locationservice/internal/metrics"
	"locationservice/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if cfg.IsDev() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Sync owners and redirect rules from the optional YAML config
	yamlCfg, err := config.LoadYAMLConfigFile(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	if yamlCfg != nil {
		if err := database.SyncOwners(ctx, yamlCfg); err != nil {
			log.Fatalf("Failed to sync owners: %v", err)
		}
		log.Printf("Synced %d owners from config file", len(yamlCfg.Owners))
	}

	if cfg.SeedDevData {
		if err := database.SeedDevData(ctx); err != nil {
			log.Fatalf("Failed to seed development data: %v", err)
		}
		log.Println("Development data seeded (owner: demo)")
	}

	metrics.Init(database)

	// Search statistics
	var recorder locator.Recorder
	var stats *jobs.StatisticsRecorder
	if cfg.StatsEnabled {
		stats = jobs.NewStatisticsRecorder(database, cfg.StatsQueueSize, cfg.StatsFlushInterval)
		recorder = stats
		go stats.Start(ctx)
	} else {
		log.Println("Search statistics are disabled")
	}

	if cfg.ConfigWatch {
		watcher, err := jobs.NewConfigWatcher(cfg.ConfigFile, database)
		if err != nil {
			log.Printf("Warning: config watcher disabled: %v", err)
		} else {
			go watcher.Start(ctx)
		}
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, recorder)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (call number ceiling: %d words)", cfg.ServerAddr, cfg.MaxCallNoWords)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cancel()
	if stats != nil {
		stats.Wait()
	}
	log.Println("Server exited")
}
