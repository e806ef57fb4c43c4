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
	"syscall"
	"time"

	"github.com/jha-shubham/PRDs/internal/config"
	"github.com/jha-shubham/PRDs/internal/demo"
	"github.com/jha-shubham/PRDs/internal/export"
	"github.com/jha-shubham/PRDs/internal/logging"
	"github.com/jha-shubham/PRDs/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	flag "github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("prd", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	configPath := flagSet.String("config", "", "Path to a YAML config file (default $PRD_CONFIG_PATH)")
	mode := flagSet.String("mode", "", "Run mode: demo|stdio|http [default: demo]")
	exportPath := flagSet.String("export", "", "Write a snapshot of the store to this file after the demo")
	exportFormat := flagSet.String("export-format", "", "Export format: json|yaml|msgpack [default: json]")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}
	if *mode != "" {
		cfg.Transport.Mode = *mode
	}
	if *exportPath != "" {
		cfg.Export.Path = *exportPath
	}
	if *exportFormat != "" {
		cfg.Export.Format = *exportFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}

	// Logs never go to stdout: it carries the demo report or the stdio protocol.
	logger, closeLog, err := logging.Open(errOut, cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		logger.Warn("failed to open log file, logging to stderr", "path", cfg.Log.Path, "error", err)
	}
	defer closeLog()

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		return 1
	}
	defer st.Close()
	logger.Debug("store ready", "backend", cfg.Store.Backend, "capacity", cfg.Store.Capacity, "ids", cfg.IDs.Strategy)

	switch cfg.Transport.Mode {
	case config.ModeStdio:
		err = runStdioMode(ctx, logger, newMCPServer(st, logger))
	case config.ModeHTTP:
		err = runHTTPMode(ctx, logger, newMCPServer(st, logger), cfg.Server.Host, cfg.Server.Port)
	default:
		err = demo.Run(ctx, out, st.prds, st.activity, demo.Options{
			ExportPath:   cfg.Export.Path,
			ExportFormat: format,
		})
	}
	if err != nil {
		logger.Error("run failed", "mode", cfg.Transport.Mode, "error", err)
		return 1
	}
	return 0
}

func newMCPServer(st *store, logger *slog.Logger) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		PRDs:     st.prds,
		Activity: st.activity,
		Logger:   logger,
	})
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           newHTTPHandler(mcpServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHTTPHandler serves the MCP endpoint and a health check.
func newHTTPHandler(mcpServer *sdkmcp.Server) http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return router
}
