package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

const serverKeyScope = "server:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		measure string
		maxBody int64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz     liveness and build info
  POST /v1/place    place one label on an arc segment
  POST /v1/render   render a hierarchy (?format=svg|png|pdf|json)

Renders share the cache configured in the [cache] section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("max-body") && cfg.Server.MaxBodySize > 0 {
				maxBody = cfg.Server.MaxBodySize
			}
			if !cmd.Flags().Changed("measure") && cfg.Render.Measure != "" {
				measure = cfg.Render.Measure
			}
			timeout, err := cfg.Server.timeout()
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, server.Config{
				Logger:      c.Logger,
				MaxBodySize: maxBody,
				Timeout:     timeout,
			}, measure, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&measure, "measure", pipeline.MeasureApprox, "measurer for /v1/place text: approx, font")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "maximum request body in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, cfg server.Config, measure string, noCache bool) error {
	if err := pipeline.ValidateMeasure(measure); err != nil {
		return err
	}
	m, err := pipeline.Measurer(measure)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Server renders live beside CLI renders when the backend is shared.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, serverKeyScope)
	cfg.Runner = runner
	cfg.Measurer = m
	printInfo("Serving on http://%s", addr)

	err = server.New(cfg).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
	}
	return err
}
