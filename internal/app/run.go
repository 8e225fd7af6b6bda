package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gi8lino/jiraview/internal/config"
	"github.com/gi8lino/jiraview/internal/flag"
	"github.com/gi8lino/jiraview/internal/jira"
	"github.com/gi8lino/jiraview/internal/logging"
	"github.com/gi8lino/jiraview/internal/metrics"
	"github.com/gi8lino/jiraview/internal/proxy"
	"github.com/gi8lino/jiraview/internal/server"

	"github.com/containeroo/tinyflags"
)

// Run starts the jiraview application.
func Run(ctx context.Context, webFS fs.FS, version, commit string, args []string, w io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, w, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting jiraview",
		"version", version,
		"commit", commit,
	)

	// Load config
	cfg, err := config.LoadConfig(flags.Config)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}

	// Validate config
	if err := config.ValidateConfig(&cfg); err != nil {
		return fmt.Errorf("validating config error: %w", err)
	}

	// Setup jira client; credentials arrive per request.
	client := jira.NewClient(
		jira.Endpoint{Scheme: cfg.Upstream.Scheme, HostSuffix: cfg.Upstream.HostSuffix},
		*cfg.Upstream.Timeout,
		cfg.Upstream.SkipTLSVerify,
	)

	logger.Debug("proxy config",
		"endpoint", cfg.Endpoint,
		"upstream", client.Endpoint.SearchURL("org"),
		"timeout", cfg.Upstream.Timeout.String(),
		"allowOrigins", cfg.CORS.AllowOrigins,
		"maxBodyBytes", cfg.Server.MaxBodyBytes,
	)

	m := metrics.New()
	p := proxy.New(client, cfg, logger, m)

	// Setup Server and run forever
	router := server.NewRouter(
		webFS,
		cfg,
		p,
		m,
		logger,
		flags.Debug,
		version,
		flags.RoutePrefix,
	)
	err = server.RunHTTPServer(ctx, router, flags.ListenAddr, server.WriteTimeout(*cfg.Upstream.Timeout), logger)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server exited with error", "error", err)
	}

	return err
}
