package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"vendor-collective/app"
	"vendor-collective/config"
	"vendor-collective/db"
	"vendor-collective/logging"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	// Load .env file in development (ignores error if file doesn't exist).
	// In production, variables should be set directly.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	}

	cfg, err := config.LoadConfiguration(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := logging.Init(cfg.Logging)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer logger.Sync()

	handler, err := app.Initialize(cfg)
	if err != nil {
		logging.L.Fatalf("Failed to initialize application: %v", err)
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces.
	addr := "0.0.0.0:" + cfg.Server.Port
	logging.L.Infof("🚀 Server starting on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logging.L.Fatalf("Server failed to start: %v", err)
	}
}
