package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var ErrDatabaseDriverUnknown = errors.New("builder config: database driver is invalid")
var ErrDatabaseDSNRequired = errors.New("builder config: database dsn is required")
var ErrStorageProviderUnknown = errors.New("builder config: storage provider is invalid")
var ErrStorageBucketRequired = errors.New("builder config: storage bucket is required for the supabase provider")
var ErrStorageBaseURLRequired = errors.New("builder config: storage base url is required")
var ErrStorageRootRequired = errors.New("builder config: storage root directory is required for the local provider")
var ErrLoggingProviderUnknown = errors.New("builder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("builder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("builder config: logging format is invalid")
var ErrUploadLimitInvalid = errors.New("builder config: image upload limit must be positive")

// Config aggregates adapter bindings for the page builder module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Images   ImagesConfig
	Logging  LoggingConfig
	HTTP     HTTPConfig
}

// DatabaseConfig selects the bun dialect and connection string. An empty
// driver keeps every repository in process memory.
type DatabaseConfig struct {
	Driver string // "sqlite", "postgres" or empty
	DSN    string
}

// StorageConfig selects and parameterises the object storage provider.
type StorageConfig struct {
	Provider string // "supabase", "local" or "memory"
	Bucket   string
	BaseURL  string // Supabase project URL, or public base URL for local files
	APIKey   string // Supabase service role key
	RootDir  string // local provider only
}

// ImagesConfig bounds the ingestion pipeline.
type ImagesConfig struct {
	MaxUploadBytes int64
	FetchTimeout   time.Duration
}

// LoggingConfig wires the go-logger provider.
type LoggingConfig struct {
	Provider  string // "gologger" or "noop"
	Level     string
	Format    string
	AddSource bool
}

// HTTPConfig parameterises the optional HTTP adapter.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// DefaultConfig returns the canonical development configuration: sqlite in
// memory, local storage under ./data/storage, JSON logs.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Storage: StorageConfig{
			Provider: "local",
			Bucket:   "images",
			BaseURL:  "http://localhost:3001/storage",
			RootDir:  "data/storage",
		},
		Images: ImagesConfig{
			MaxUploadBytes: 10 * 1024 * 1024,
			FetchTimeout:   30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		HTTP: HTTPConfig{
			Addr:     ":3001",
			BasePath: "/api",
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "":
		// No database: repositories run in process memory.
	case "sqlite", "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return ErrDatabaseDSNRequired
		}
	default:
		return ErrDatabaseDriverUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Provider)) {
	case "supabase":
		if strings.TrimSpace(c.Storage.Bucket) == "" {
			return ErrStorageBucketRequired
		}
		if strings.TrimSpace(c.Storage.BaseURL) == "" {
			return ErrStorageBaseURLRequired
		}
	case "local":
		if strings.TrimSpace(c.Storage.RootDir) == "" {
			return ErrStorageRootRequired
		}
		if strings.TrimSpace(c.Storage.BaseURL) == "" {
			return ErrStorageBaseURLRequired
		}
	case "memory":
	default:
		return ErrStorageProviderUnknown
	}

	if c.Images.MaxUploadBytes <= 0 {
		return ErrUploadLimitInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
	case "", "noop", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}
