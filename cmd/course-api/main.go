// main is the entry point of the course-management GraphQL API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (MONGO_URI is mandatory)
//  2. Initialise the logger
//  3. Connect to MongoDB and ping it (or select the in-memory backend)
//  4. Build the resolver and the GraphQL schema
//  5. Mount the /graphql endpoint and start the HTTP server in a goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, disconnect the store
//
// RUNNING THE SERVER:
//
//	MONGO_URI=mongodb://localhost:27017 go run ./cmd/course-api
//
// or with a config file:
//
//	go run ./cmd/course-api --config=config/local.yaml
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graphql-go/handler"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jcondehz/course-graph-api/internal/config"
	"github.com/jcondehz/course-graph-api/internal/graph"
	"github.com/jcondehz/course-graph-api/internal/storage"
	"github.com/jcondehz/course-graph-api/internal/storage/memory"
	"github.com/jcondehz/course-graph-api/internal/storage/mongodb"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting course-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The rest of the code only sees the storage.Storage interface; the
	// concrete backend is chosen here, once, and injected everywhere.
	var (
		store  storage.Storage
		client *mongo.Client
	)
	if cfg.Mongo.URI == "memory" {
		store = memory.New()
		log.Info("storage initialised", slog.String("backend", "memory"))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			log.Error("failed to connect to mongodb", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := client.Ping(ctx, nil); err != nil {
			log.Error("failed to ping mongodb", slog.String("error", err.Error()))
			os.Exit(1)
		}

		store = mongodb.New(client.Database(cfg.Mongo.Database))
		log.Info("storage initialised",
			slog.String("backend", "mongodb"),
			slog.String("database", cfg.Mongo.Database),
		)
	}

	// ── 4. Build Resolver and Schema ──────────────────────────────────────
	resolver := graph.NewResolver(store, log)

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Error("failed to build schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 5. Mount the GraphQL Endpoint ─────────────────────────────────────
	// The handler owns request parsing and response formatting; GraphiQL
	// (the in-browser IDE) is served on GET outside production.
	gqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   cfg.Env != "prod",
		GraphiQL: cfg.Env != "prod",
	})

	router := http.NewServeMux()
	router.Handle("/graphql", gqlHandler)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			log.Error("failed to disconnect from mongodb",
				slog.String("error", err.Error()))
		}
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
