package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KhanhRomVN/GoFlow-sub001/internal/server"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/buildinfo"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/config"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/store"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes the pipeline over JSON: POST a call graph to /api/v1/layout
for positions or to /api/v1/render for DOT/SVG artifacts. When a MongoDB store
is configured, computed layouts can be saved and listed under /api/v1/layouts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the runner and store, then serves until cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	srv := server.New(runner, st, c.Logger, buildinfo.Version)
	return srv.Run(ctx, cfg.Serve.Addr)
}

// newStore connects the configured layout store. Without a Mongo URI the
// server falls back to an in-memory store.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.MongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
}
