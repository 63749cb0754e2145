package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// MetadataSource selects the backend the provider resolves content
// metadata from.
type MetadataSource string

const (
	SourceHTTP   MetadataSource = "http"
	SourceAzure  MetadataSource = "azure"
	SourceStatic MetadataSource = "static"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	FetchTimeout       time.Duration
	MaxRequestBodySize int64

	// Provider identity, immutable for the process lifetime. An empty
	// ProviderDomain is legal here; the authorizer reports it per request
	// as a server misconfiguration.
	ProviderName   string
	ProviderURL    string
	ProviderDomain string

	MetadataSource     MetadataSource
	MetadataBackendURL string

	AzureStorageAccount    string
	AzureStorageKey        string
	AzureMetadataContainer string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		FetchTimeout:       parseDurationOrDefault("METADATA_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1024*1024), // 1MB

		ProviderName:   getEnvOrDefault("PROVIDER_NAME", "My Business Name"),
		ProviderURL:    getEnvOrDefault("PROVIDER_URL", "https://mybusiness.com"),
		ProviderDomain: os.Getenv("PROVIDER_DOMAIN"),

		MetadataSource:     MetadataSource(getEnvOrDefault("METADATA_SOURCE", string(SourceHTTP))),
		MetadataBackendURL: os.Getenv("METADATA_BACKEND_URL"),

		AzureStorageAccount:    os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:        os.Getenv("AZURE_STORAGE_KEY"),
		AzureMetadataContainer: getEnvOrDefault("AZURE_METADATA_CONTAINER", "oembed-metadata"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.FetchTimeout)
	}
	switch cfg.MetadataSource {
	case SourceHTTP, SourceAzure, SourceStatic:
	default:
		return nil, fmt.Errorf("invalid METADATA_SOURCE: %q", cfg.MetadataSource)
	}
	if cfg.MetadataSource == SourceHTTP && cfg.MetadataBackendURL == "" {
		return nil, fmt.Errorf("METADATA_BACKEND_URL is required when METADATA_SOURCE=http")
	}
	if cfg.MetadataSource == SourceAzure && (cfg.AzureStorageAccount == "" || cfg.AzureStorageKey == "") {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY are required when METADATA_SOURCE=azure")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
