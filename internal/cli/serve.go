package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/internal/server"
	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveConfig is the optional TOML config for serve. Flags that are set
// explicitly take precedence over file values.
type serveConfig struct {
	Addr    string `toml:"addr"`
	Redis   string `toml:"redis"`
	Mongo   string `toml:"mongo"`
	MongoDB string `toml:"mongo_db"`
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfgPath  string
		addr     string
		redisURL string
		mongoURI string
		mongoDB  string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tilegrid HTTP API",
		Long: `Run the tilegrid HTTP API.

The server exposes layout analysis, rendering, and snapshot sharing over
HTTP. By default it keeps everything in process: a local file cache for
render artifacts and an in-memory snapshot store.

For multi-instance deployments, point --redis at a shared cache and
--mongo at a MongoDB instance for durable snapshots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				var cfg serveConfig
				if _, err := toml.DecodeFile(cfgPath, &cfg); err != nil {
					return fmt.Errorf("read config %s: %w", cfgPath, err)
				}
				if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
					addr = cfg.Addr
				}
				if !cmd.Flags().Changed("redis") && cfg.Redis != "" {
					redisURL = cfg.Redis
				}
				if !cmd.Flags().Changed("mongo") && cfg.Mongo != "" {
					mongoURI = cfg.Mongo
				}
				if !cmd.Flags().Changed("mongo-db") && cfg.MongoDB != "" {
					mongoDB = cfg.MongoDB
				}
			}
			return c.runServe(cmd.Context(), addr, redisURL, mongoURI, mongoDB, noCache)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared artifact cache (redis://...)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for durable snapshots (mongodb://...)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "mongodb database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURI, mongoDB string, noCache bool) error {
	store, err := c.newSnapshotStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(shutdownCtx)
	}()

	cch, err := c.newServerCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	defer cch.Close()

	runner := pipeline.NewRunner(cch, nil, c.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, store, c.Logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServerCache picks the artifact cache backend for serve.
func (c *CLI) newServerCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCacheFromURL(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return newCache(false)
}

// newSnapshotStore picks the snapshot backend for serve.
func (c *CLI) newSnapshotStore(ctx context.Context, mongoURI, mongoDB string) (snapshot.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("using in-memory snapshots: they are lost on restart")
		return snapshot.NewMemoryStore(), nil
	}
	store, err := snapshot.NewMongoStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("using mongodb snapshots", "db", mongoDB)
	return store, nil
}
