// Command sightings explores a CSV dataset of reported UFO sightings.
//
// Usage:
//
//	sightings [--data data/ufo_sightings.csv] [--format json|yaml]
//	sightings serve [--data data/ufo_sightings.csv] [--addr :8080]
//
// Settings default to environment variables (DATA_PATH, OUTPUT_FORMAT,
// HTTP_ADDR, LOG_LEVEL, LOG_FORMAT, QUERY_CACHE_SIZE, SHUTDOWN_TIMEOUT);
// flags take precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/sightings-explorer/internal/adapter/http"
	"github.com/couchcryptid/sightings-explorer/internal/adapter/csvfile"
	"github.com/couchcryptid/sightings-explorer/internal/cli"
	"github.com/couchcryptid/sightings-explorer/internal/config"
	"github.com/couchcryptid/sightings-explorer/internal/observability"
	"github.com/couchcryptid/sightings-explorer/internal/query"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app bundles what both commands need once config and data are loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	engine  *query.Engine
}

func newRootCmd() *cobra.Command {
	var dataPath, format string

	root := &cobra.Command{
		Use:          "sightings",
		Short:        "Explore reported UFO sightings interactively",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(dataPath, format, "")
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			return a.explore(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&dataPath, "data", "", "path to the sightings CSV file, or - for stdin (default $DATA_PATH)")
	root.Flags().StringVar(&format, "format", "", "result format: json or yaml (default $OUTPUT_FORMAT)")

	root.AddCommand(newServeCmd(&dataPath))
	return root
}

func newServeCmd(dataPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only query endpoints over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataPath, "", addr)
			if err != nil {
				return err
			}
			if cfg.HTTPAddr == "" {
				cfg.HTTPAddr = config.DefaultServeAddr
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HTTP_ADDR or "+config.DefaultServeAddr+")")
	return cmd
}

// loadConfig reads the environment and applies non-empty flag overrides.
func loadConfig(dataPath, format, addr string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if format != "" {
		cfg.OutputFormat = strings.ToLower(format)
	}
	if addr != "" {
		cfg.HTTPAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(cfg *config.Config) (*app, error) {
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ds, err := csvfile.Load(cfg.DataPath, logger, metrics)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DataPath, "error", err)
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		engine:  query.New(ds, logger, metrics),
	}, nil
}

// explore runs the interactive session. When HTTP_ADDR is set the query API
// is served alongside it until the session ends.
func (a *app) explore(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.HTTPAddr != "" {
		srv := a.startServer()
		defer a.shutdownServer(srv)
	}

	session := cli.NewSession(a.engine, in, out, cli.NewRenderer(a.cfg.OutputFormat), a.logger)

	// The session blocks on input, so it runs in its own goroutine and a
	// signal ends the command without waiting for the next line.
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		a.logger.Info("interrupted")
		return nil
	}
}

// serve runs the HTTP API until SIGINT or SIGTERM, or until the listener
// fails.
func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := a.newServer()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		a.shutdownServer(srv)
		a.logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}

func (a *app) newServer() *httpadapter.Server {
	cached := query.NewCachedEngine(a.engine, a.cfg.QueryCacheSize, a.metrics)
	return httpadapter.NewServer(a.cfg.HTTPAddr, cached, a.engine, a.logger)
}

func (a *app) startServer() *httpadapter.Server {
	srv := a.newServer()
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", "error", err)
		}
	}()
	return srv
}

func (a *app) shutdownServer(srv *httpadapter.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
}
