package config

import (
	"os"
	"strings"
)

type AppConfig struct {
	Environment  string
	EnforceHTTPS bool

	// AllowedOrigins is the CORS allow-list; requests from other
	// origins get no CORS headers at all.
	AllowedOrigins []string

	CacheEnabled bool
	RedisURL     string
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:    "development",
		EnforceHTTPS:   false,
		AllowedOrigins: []string{"http://localhost:3000"},
		CacheEnabled:   true,
	}
}

func GetConfigFromEnv() *AppConfig {
	config := GetDefaultConfig()

	if os.Getenv("GIN_MODE") == "release" {
		config.Environment = "production"
		config.EnforceHTTPS = true
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if os.Getenv("CACHE_ENABLED") == "false" {
		config.CacheEnabled = false
	}

	config.RedisURL = os.Getenv("REDIS_URL")

	return config
}

func GetServerPort() string {
	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	return port
}
