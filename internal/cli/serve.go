package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/rpsmatch-go/internal/api"
	"github.com/mcoot/rpsmatch-go/internal/factory"
	redisstorage "github.com/mcoot/rpsmatch-go/internal/storage/redis"
)

type serveOptions struct {
	host        string
	port        int
	storageType string
	redisURL    string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{
		storageType: envOr("STORAGE_TYPE", factory.StorageTypeMemory),
		redisURL:    os.Getenv("REDIS_URL"),
	}

	serverCfg := api.DefaultServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the matchmaking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", serverCfg.Host, "Listen host")
	cmd.Flags().IntVar(&opts.port, "port", serverCfg.Port, "Listen port")
	cmd.Flags().StringVar(&opts.storageType, "storage", opts.storageType, "Storage backend: memory, redis (env: STORAGE_TYPE)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis URL for the redis backend (env: REDIS_URL)")

	return cmd
}

func runServe(opts serveOptions) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:      logger,
		StorageType: opts.storageType,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if opts.redisURL != "" {
			redisCfg.URL = opts.redisURL
		}
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		Hub:        app.Hub,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = opts.host
	serverCfg.Port = opts.port
	server := api.NewServer(router, serverCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		app.Hub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
