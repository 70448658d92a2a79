package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	pagebuilder "github.com/monospace/pagebuilder"
	"github.com/monospace/pagebuilder/components"
)

func main() {
	ctx := context.Background()

	cfg := configFromEnv()

	module, err := pagebuilder.New(cfg)
	if err != nil {
		log.Fatalf("initialise builder: %v", err)
	}
	defer module.Close()

	if db := module.Container().BunDB(); db != nil {
		if err := pagebuilder.ApplyMigrations(ctx, db); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	if strings.EqualFold(os.Getenv("BUILDER_SEED_COMPONENTS"), "true") {
		components.Seed(module.Container().ComponentStore())
	}

	mux := http.NewServeMux()
	module.API().Register(mux)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("builder listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve: %v", err)
	}
}

func configFromEnv() pagebuilder.Config {
	cfg := pagebuilder.DefaultConfig()

	setString(&cfg.Database.Driver, "BUILDER_DB_DRIVER")
	setString(&cfg.Database.DSN, "BUILDER_DB_DSN")

	setString(&cfg.Storage.Provider, "BUILDER_STORAGE_PROVIDER")
	setString(&cfg.Storage.Bucket, "BUILDER_STORAGE_BUCKET")
	setString(&cfg.Storage.BaseURL, "BUILDER_STORAGE_BASE_URL")
	setString(&cfg.Storage.APIKey, "BUILDER_STORAGE_API_KEY")
	setString(&cfg.Storage.RootDir, "BUILDER_STORAGE_ROOT")

	setString(&cfg.Logging.Provider, "BUILDER_LOG_PROVIDER")
	setString(&cfg.Logging.Level, "BUILDER_LOG_LEVEL")
	setString(&cfg.Logging.Format, "BUILDER_LOG_FORMAT")

	setString(&cfg.HTTP.Addr, "BUILDER_HTTP_ADDR")
	setString(&cfg.HTTP.BasePath, "BUILDER_HTTP_BASE_PATH")

	if raw := os.Getenv("BUILDER_MAX_UPLOAD_BYTES"); raw != "" {
		if limit, err := strconv.ParseInt(raw, 10, 64); err == nil && limit > 0 {
			cfg.Images.MaxUploadBytes = limit
		}
	}

	return cfg
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
