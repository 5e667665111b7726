package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"mcp-bigip/internal/fakebigip"
	"mcp-bigip/internal/wslogging"
	"mcp-bigip/pkg/bigip"
)

const harnessName = "mcp-bigip-harness"

type options struct {
	config

	serverCmd  string
	serverArgs []string
	env        []string
	output     string
	timeout    time.Duration
	fake       bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   harnessName + " [flags] [-- server args]",
		Short: "Run the BIG-IP validation flow through mcp-bigip over stdio",
		Long: "Launches mcp-bigip as a stdio subprocess, walks a generated iRule through\n" +
			"create, update, attach, log tail, detach and delete, and prints the results as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.serverArgs = args
			return run(cmd.Context(), o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.virtual, "virtual", "/Common/TestVs", "Fully qualified virtual server to exercise")
	flags.StringVar(&o.rulePrefix, "rule-prefix", defaultRulePrefix, "Prefix for generated validation iRules")
	flags.StringVar(&o.definitionV1, "definition-v1", defaultDefinitionV1, "Initial iRule definition")
	flags.StringVar(&o.definitionV2, "definition-v2", defaultDefinitionV2, "Updated iRule definition")
	flags.IntVar(&o.logLines, "log-lines", 5, "Number of lines to fetch with logs_tail_ltm")
	flags.StringVar(&o.logFilter, "log-filter", "", "Optional substring filter passed to logs_tail_ltm")
	flags.StringVar(&o.serverCmd, "server-command", "mcp-bigip", "Server executable launched over stdio")
	flags.StringArrayVar(&o.env, "env", nil, "Additional KEY=VALUE pairs for the server environment (repeatable)")
	flags.StringVar(&o.output, "output", "", "Optional path to write the JSON results")
	flags.DurationVar(&o.timeout, "timeout", 2*time.Minute, "Overall timeout of the validation run")
	flags.BoolVar(&o.fake, "fake", false, "Serve an in-memory BIG-IP on localhost and point the server at it")
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
	logger := slog.New(wslogging.NewHandler(os.Stderr, nil)).With("component", harnessName)

	overrides, err := parseEnvOverrides(o.env)
	if err != nil {
		return err
	}
	env := os.Environ()

	if o.fake {
		url, stopFake, err := startFake(logger)
		if err != nil {
			return err
		}
		defer stopFake()
		env = append(env, bigip.EnvHost+"="+url, bigip.EnvToken+"=harness-token")
	}
	// overrides come last so they win over the inherited environment
	env = append(env, overrides...)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	c, err := client.NewStdioMCPClient(o.serverCmd, env, o.serverArgs...)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", o.serverCmd, err)
	}
	defer c.Close()

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{Name: harnessName, Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initRequest); err != nil {
		return fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	results, runErr := runValidation(ctx, logger, c, o.config, time.Now())
	if err := writeResults(os.Stdout, o.output, results); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func writeResults(stdout io.Writer, path string, results map[string]any) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	data = append(data, '\n')
	if _, err := stdout.Write(data); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// startFake serves a fresh fakebigip.Server on a loopback port.
func startFake(logger *slog.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listening for fake BIG-IP: %w", err)
	}
	srv := &http.Server{
		Handler:           fakebigip.New(fakebigip.WithLogger(logger.With("component", "fakebigip"))),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("fake BIG-IP stopped", "error", err)
		}
	}()
	url := "http://" + ln.Addr().String()
	logger.Info("serving fake BIG-IP", "url", url)
	return url, func() { _ = srv.Close() }, nil
}
