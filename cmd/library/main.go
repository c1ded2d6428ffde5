// cmd/library/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"libraryinventory/internal/catalog"
	"libraryinventory/internal/cli"
	"libraryinventory/internal/config"
	"libraryinventory/internal/storage"
	"libraryinventory/internal/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:           "library",
		Short:         "Interactive library catalog manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path of the catalog file")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP/HTTP endpoint for trace export")

	return cmd
}

func run(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
	}()

	svc := catalog.NewService(ctx, storage.NewFile(cfg.CatalogPath),
		catalog.WithLogger(tel.Logger),
		catalog.WithTracerProvider(tel.TracerProvider),
		catalog.WithMeterProvider(tel.MeterProvider),
	)

	prompt := cli.NewPrompter(ctx, os.Stdin, os.Stdout)
	handler := cli.NewHandler(svc, prompt, os.Stdout)
	return cli.NewMenu(handler, prompt, os.Stdout, tel.Logger).Run(ctx)
}
