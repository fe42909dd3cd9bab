package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/config"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		noCache  bool
		refresh  bool
		flags    strategyFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a call graph to JSON, DOT, or SVG",
		Long: `Render a call graph to JSON, DOT, or SVG.

The render command runs the full pipeline: it loads a graph.json file,
computes the layout, and writes one artifact per requested format next to
the input file. SVG output embeds the computed positions, so no external
Graphviz installation is needed.

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
				Formats:  parseFormats(formats),
				Detailed: detailed,
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			return c.runRender(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats: json, dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include kind and file in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")
	flags.register(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.EntityCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	return nil
}
