package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// exportCommand creates the export command for rendering layouts to files.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export <layout.toml|layout.json>",
		Short: "Render a layout to SVG, PNG, PDF, or DOT",
		Long: `Render a layout to SVG, PNG, PDF, or DOT.

The export command runs the full pipeline: load the layout, analyze its
adjacency graph, and render the requested visualization.

Two kinds are available:
  plan       - the layout itself as a floor plan (default)
  adjacency  - the adjacency graph as a node-link diagram

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			l, err := loadInput(args[0])
			if err != nil {
				return err
			}
			opts.Layout = &l
			opts.Logger = c.Logger
			return c.runExport(cmd, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", pipeline.DefaultKind, "visualization kind: plan, adjacency")
	cmd.Flags().StringVar(&opts.Theme, "theme", pipeline.DefaultTheme, "plan theme: light, dark")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw pane labels (plan)")
	cmd.Flags().BoolVar(&opts.EdgeOverlay, "edges", false, "draw shared edges on the plan")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "verbose edge labels (adjacency)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "frame height in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runExport executes the pipeline and writes the artifacts to disk.
func (c *CLI) runExport(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printSuccess("Exported %s", filepath.Base(input))
	printDetail("panes: %d, edges: %d", result.Stats.PaneCount, result.Stats.EdgeCount)

	for _, format := range opts.Formats {
		path := outputPath(input, output, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath resolves the target file for one format.
//
// With a single format, -o names the file directly. With multiple
// formats, -o is a base path and each format appends its extension.
// Without -o, the input basename is reused next to the input.
func outputPath(input, output, format string, multi bool) string {
	if output != "" {
		if !multi {
			return output
		}
		return output + "." + format
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}
