package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"mcp-bigip/internal/middleware"
	"mcp-bigip/internal/wslogging"
	"mcp-bigip/pkg/bigip"
	"mcp-bigip/pkg/registry"
)

const (
	mcpName    = "mcp-bigip"
	mcpVersion = "0.1.0"

	shutdownTimeout = 10 * time.Second
)

type options struct {
	transport  string
	bindAddr   string
	logLevel   string
	configPath string
	services   []string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           mcpName,
		Short:         "MCP server for F5 BIG-IP LTM over iControl REST",
		Version:       mcpVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.transport, "transport", envOr("TRANSPORT", "stdio"), "Transport to serve MCP on: stdio or http")
	flags.StringVar(&o.bindAddr, "bind-addr", envOr("BIND_ADDR", "0.0.0.0:8080"), "Listen address for the http transport")
	flags.StringVar(&o.logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	flags.StringVar(&o.configPath, "config", os.Getenv("BIGIP_CONFIG"), "Optional TOML file with BIG-IP settings; BIGIP_* variables take precedence")
	flags.StringSliceVar(&o.services, "services", splitList(os.Getenv("BIGIP_SERVICES")),
		"Comma separated services to enable ("+strings.Join(registry.SupportedServices(), ", ")+"); all when empty")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options) error {
	if o.transport != "stdio" && o.transport != "http" {
		return fmt.Errorf("unsupported transport %q, must be stdio or http", o.transport)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}

	handler, err := wslogging.NewFromEnv(os.Stderr, &slog.HandlerOptions{Level: level})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	handler.Start(ctx)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = handler.Close(closeCtx)
	}()
	logger := slog.New(handler)
	slog.SetDefault(logger)

	settings, err := bigip.LoadSettings(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load BIG-IP settings: %w", err)
	}
	client := bigip.New(*settings, bigip.WithLogger(logger.With("component", "bigip")))
	defer client.Close()

	s, err := newServer(logger, client, o.services)
	if err != nil {
		return err
	}

	logger.Info("starting MCP server",
		"transport", o.transport,
		"bigip_host", settings.Host,
		"partition", settings.Partition,
		"auth_mode", settings.AuthMode(),
	)
	if o.transport == "stdio" {
		return server.ServeStdio(s)
	}
	return serveHTTP(ctx, logger, s, o.bindAddr)
}

// newServer builds the MCP server with every requested service registered.
func newServer(logger *slog.Logger, client *bigip.Client, services []string) (*server.MCPServer, error) {
	mw := &middleware.ToolLoggingMiddleware{Logger: logger}
	s := server.NewMCPServer(mcpName, mcpVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(mw.ToolMiddleware),
	)
	getClient := func(context.Context) (*bigip.Client, error) { return client, nil }
	if err := registry.Register(logger, s, getClient, mcpVersion, services...); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s, nil
}

func newHTTPHandler(s *server.MCPServer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func serveHTTP(ctx context.Context, logger *slog.Logger, s *server.MCPServer, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr, "endpoints", "/mcp, /metrics, /healthz")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
