package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eventgraph/config"
	"eventgraph/db"
	"eventgraph/graph"
	"eventgraph/models"
	"eventgraph/routes"
	"eventgraph/utils"
)

var rootCmd = &cobra.Command{
	Use:   "eventgraph",
	Short: "GraphQL API over an in-memory dataset of events, users, locations and participants.",
	Long: `
eventgraph seeds an in-memory store once at startup (from a JSON file, Postgres
or Mongo) and serves it over GraphQL. Schema v1 is read-only; v2 adds create,
update and delete mutations. Nothing is written back: changes last as long as
the process.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Seed
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	src, err := db.Open(ctx, db.SourceConfig{
		Kind:        cfg.Seed.Source,
		File:        cfg.Seed.File,
		PostgresDSN: cfg.Seed.PostgresDSN,
		MongoURI:    cfg.Seed.MongoURI,
		MongoDB:     cfg.Seed.MongoDB,
	})
	if err != nil {
		return err
	}
	store := models.NewStore()
	err = db.Seed(ctx, store, src)
	_ = src.Close()
	if err != nil {
		return err
	}
	logger.Info("store seeded", zap.String("source", cfg.Seed.Source), zap.Any("counts", store.Counts()))

	// Redis (optional)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}
	inv := utils.NewCacheInvalidator(rdb)

	// GraphQL
	schema, err := graph.NewSchema(graph.NewResolver(store, cfg.SchemaVersion, inv, logger))
	if err != nil {
		return err
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	stopLimiters := routes.RegisterRoutes(server, schema, store, routes.Options{
		Redis:       rdb,
		CacheTTL:    cfg.Redis.CacheTTL,
		RPS:         cfg.Limits.RPS,
		Burst:       cfg.Limits.Burst,
		WriteRPS:    cfg.Limits.WriteRPS,
		WriteBurst:  cfg.Limits.WriteBurst,
		QuotaPerDay: cfg.Limits.QuotaPerDay,
		Logger:      logger,
	})
	defer stopLimiters()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("graphql server ready", zap.String("addr", srv.Addr), zap.String("schema", cfg.SchemaVersion))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}
