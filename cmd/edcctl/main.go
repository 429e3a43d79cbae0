// Package main provides the edcctl binary entry point.
// edcctl talks to a connector's management API and works with catalog
// documents offline.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/edcclient/client"
	"github.com/c360studio/edcclient/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "edcctl"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by subcommands. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	url        string
	apiKey     string

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Connector management client",
		Long: `edcctl drives a dataspace connector through its management API.

It provides:
- Asset, policy and contract inspection
- Catalog requests with dataset and service projections
- Negotiation and transfer tracking
- Offline catalog flattening and RDF export`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.url, "url", "", "Management API base URL")
	cmd.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Management API key")

	cmd.AddCommand(
		catalogCmd(a),
		jsonldCmd(a),
		assetCmd(a),
		negotiationCmd(a),
		transferCmd(a),
		dataPlaneCmd(a),
		configCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// init loads configuration, applies flag overrides and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	cfg, err := config.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil))).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Merge(&config.Config{
		Management: config.ManagementConfig{URL: a.url, APIKey: a.apiKey},
		Log:        config.LogConfig{Level: a.logLevel},
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, _ := cfg.Log.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
	return nil
}

// client builds a management client from the effective configuration.
func (a *app) client() *client.Client {
	opts := []client.Option{
		client.WithHTTPClient(&http.Client{Timeout: a.cfg.Management.Timeout}),
		client.WithRetryConfig(a.cfg.ClientRetry()),
		client.WithLogger(a.logger),
	}
	if a.cfg.Management.APIKey != "" {
		opts = append(opts, client.WithAPIKey(a.cfg.Management.APIKey))
	}
	return client.New(a.cfg.Management.URL, opts...)
}
