// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Environment variables alone (no file) — the Docker/Deno-style
//     deployment where MONGO_URI is all you set.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" on the Mongo URI means the app refuses to start
// without a store connection string — better to crash at boot with a
// clear diagnostic than to open a listener that cannot serve anything.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// Mongo holds the document-store connection settings.
	Mongo Mongo `yaml:"mongo"`

	// HTTPServer is embedded so its fields are accessible directly on
	// Config: cfg.HTTPServer.Addr or after promotion cfg.Addr.
	HTTPServer `yaml:"http_server"`
}

// Mongo holds settings for the document store.
type Mongo struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	// The special value "memory" selects the in-memory backend —
	// useful for demos and local experiments with no database at hand.
	URI string `yaml:"uri" env:"MONGO_URI" env-required:"true"`

	// Database is the database name holding the three entity collections.
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"course-management"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8080".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8080"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name follows the Go convention: "Must" functions are allowed to
// fatal on failure, so if this returns, the config is valid.
func MustLoad() *Config {
	var cfg Config

	// ── Source 1: environment variable pointing at a YAML file ───────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ──────────────────────────────────
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	// ── Source 3: environment only ───────────────────────────────────
	// No file anywhere — read everything from env vars. cleanenv still
	// enforces env-required, so a missing MONGO_URI fails loudly here.
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
