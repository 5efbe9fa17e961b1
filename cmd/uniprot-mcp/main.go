// Command uniprot-mcp runs the UniProt MCP server over stdio.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/uniprot-mcp-go/pkg/config"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/observability"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/server"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/tools"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/transport"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "uniprot-mcp",
		Short: "MCP server exposing UniProt search and fetch tools",
		Long: `uniprot-mcp speaks the Model Context Protocol over stdin/stdout and
exposes the UniProt REST API as tools: uniprot_search for paginated
queries and uniprot_fetch for direct entry retrieval.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if metricsAddr != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.ListenAddr = metricsAddr
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		var err error
		metrics, err = observability.NewMetrics(observability.MetricsConfig{
			ServiceName:    cfg.Server.Name,
			ServiceVersion: cfg.Server.Version,
			ListenAddr:     cfg.Metrics.ListenAddr,
			Logger:         logger,
		})
		if err != nil {
			return fmt.Errorf("failed to set up metrics: %w", err)
		}
		if err := metrics.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()
	}

	serverOpts := []server.ServerOption{
		server.WithName(cfg.Server.Name),
		server.WithVersion(cfg.Server.Version),
		server.WithDescription("UniProt protein database search and retrieval"),
		server.WithLogger(logger),
	}

	if cfg.Tracing.Enabled {
		tracing, err := observability.NewTracingProvider(observability.TracingConfig{
			ServiceName:    cfg.Server.Name,
			ServiceVersion: cfg.Server.Version,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		})
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracing.Shutdown(shutdownCtx)
		}()
		serverOpts = append(serverOpts, server.WithTracer(tracing.Tracer()))
	}

	registryCfg := uniprot.Config{
		BaseURL:   cfg.UniProt.BaseURL,
		BatchSize: cfg.UniProt.BatchSize,
		Logger:    logger,
	}
	if cfg.UniProt.Timeout > 0 {
		registryCfg.HTTPClient = &http.Client{Timeout: cfg.UniProt.Timeout.Std()}
	}
	if metrics != nil {
		registryCfg.Metrics = metrics
		serverOpts = append(serverOpts, server.WithMetrics(metrics))
	}

	registry := uniprot.NewRegistry(registryCfg)
	provider := tools.NewProvider(registry,
		tools.WithLogger(logger),
		tools.WithFetchConcurrency(cfg.UniProt.FetchConcurrency),
	)
	serverOpts = append(serverOpts, server.WithToolsProvider(provider))

	stdio := transport.NewStdioTransport(transport.StdioConfig{Logger: logger})
	srv := server.New(stdio, serverOpts...)

	logger.Info("starting uniprot-mcp",
		logging.String("version", cfg.Server.Version),
		logging.String("upstream", cfg.UniProt.BaseURL))

	err := srv.Start(ctx)
	if err != nil && ctx.Err() != nil {
		// Shutdown via signal is a clean exit
		err = nil
	}

	if stopErr := srv.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

func newLogger(cfg config.LoggingConfig) logging.Logger {
	var formatter logging.Formatter
	if cfg.Format == "json" {
		formatter = logging.NewJSONFormatter()
	} else {
		formatter = logging.NewTextFormatter()
	}

	// Stdout carries the protocol, diagnostics go to stderr
	logger := logging.New(os.Stderr, formatter)
	logger.SetLevel(logging.ParseLevel(cfg.Level))
	return logger
}
