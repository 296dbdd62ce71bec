// Package main - Entry point for the phone number generation server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"phonegen/api"
	"phonegen/core/artifact"
	"phonegen/db"
	"phonegen/internal/config"
	"phonegen/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to the configuration file")
	uiPath := flag.String("ui", "", "Optional path to static UI files")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		logging.Logger.Fatal("open lookup store", zap.Error(err))
	}
	defer store.Close()

	if err := os.MkdirAll(cfg.Download.Dir, 0o755); err != nil {
		logging.Logger.Fatal("create artifact store", zap.Error(err))
	}

	// Expired artifacts are swept hourly; the sweep is best effort and safe
	// to race with in-flight generation.
	go func() {
		maxAge := time.Duration(cfg.Download.ExpireHours) * time.Hour
		for range time.Tick(time.Hour) {
			if n, err := artifact.Sweep(cfg.Download.Dir, maxAge); err != nil {
				logging.Logger.Warn("retention sweep failed", zap.Error(err))
			} else if n > 0 {
				logging.Logger.Info("retention sweep", zap.Int("deleted", n))
			}
		}
	}()

	apiServer := api.NewServer(version, cfg, store)

	mux := http.NewServeMux()
	mux.Handle("/api/", apiServer)
	mux.Handle("/download/", apiServer)
	mux.Handle("/health", apiServer)
	mux.Handle("/version", apiServer)
	if *uiPath != "" {
		mux.Handle("/", http.FileServer(http.Dir(*uiPath)))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	logging.Logger.Info("starting server",
		zap.String("addr", addr),
		zap.Bool("login_enabled", cfg.Login.Enabled),
		zap.String("database", cfg.Database.Path),
		zap.String("download_dir", cfg.Download.Dir))

	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatal("server exited", zap.Error(err))
	}
}
