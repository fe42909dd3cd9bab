package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/config"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/layout"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/pipeline"
)

// strategyFlags holds the layout strategy flag values shared by the layout
// and render commands.
type strategyFlags struct {
	algorithm string
	direction string
	rankSep   float64
	nodeSep   float64
	columns   int
	seed      uint64
}

// register adds the strategy flags to cmd.
func (f *strategyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "layout algorithm: layered (default), constraint, force")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().Float64Var(&f.rankSep, "ranksep", 0, "gap between consecutive ranks")
	cmd.Flags().Float64Var(&f.nodeSep, "nodesep", 0, "gap between entities within a rank")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "declaration grid width per caller")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for the force algorithm (0 = time-seeded)")
}

// apply merges changed flags over the base strategy.
func (f *strategyFlags) apply(cmd *cobra.Command, base layout.Strategy) layout.Strategy {
	if cmd.Flags().Changed("algorithm") {
		base.Algorithm = f.algorithm
	}
	if cmd.Flags().Changed("direction") {
		base.Direction = f.direction
	}
	if cmd.Flags().Changed("ranksep") {
		base.RankSep = f.rankSep
	}
	if cmd.Flags().Changed("nodesep") {
		base.NodeSep = f.nodeSep
	}
	if cmd.Flags().Changed("columns") {
		base.Columns = f.columns
	}
	if cmd.Flags().Changed("seed") {
		base.Seed = f.seed
	}
	return base.Normalized()
}

// layoutCommand creates the layout command for computing entity positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   strategyFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute entity positions for a call graph",
		Long: `Compute entity positions for a call graph.

The layout command takes a graph.json file, groups its entities by source
file, positions each file's callables with the selected algorithm, arranges
the file clusters, and writes a layout.json with global coordinates. The
output can be rendered to DOT or SVG using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Path:     args[0],
				Strategy: flags.apply(cmd, cfg.Strategy),
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			return c.runLayout(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := pipeline.Load(opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy.Algorithm))
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Entities), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "goflow render "+opts.Path+" -f svg")

	return nil
}
