package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

// inspectCommand creates the inspect command for printing adjacency reports.
func (c *CLI) inspectCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect <layout.toml|layout.json>",
		Short: "Print the adjacency report of a layout",
		Long: `Print the adjacency report of a layout.

The inspect command builds the adjacency graph and lists every shared
edge: its axis, position, flanking panes, collinear siblings, drag range,
and whether it is breakable (movable independently of its siblings).

Input is a TOML manifest or a JSON layout file, chosen by extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadInput(args[0])
			if err != nil {
				return err
			}

			rep := layout.BuildReport(l)
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			printReport(rep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")

	return cmd
}

func printReport(rep layout.Report) {
	fmt.Println(StyleTitle.Render("Layout"))
	printKeyValue("panes", fmt.Sprintf("%d", rep.PaneCount))
	printKeyValue("edges", fmt.Sprintf("%d", rep.EdgeCount))
	fmt.Println()

	if rep.EdgeCount == 0 {
		printWarning("No shared edges: panes do not touch within tolerance")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "AXIS", "POS", "BEFORE", "AFTER", "RANGE", "SIBLINGS", "BREAKABLE")

	for _, e := range rep.Edges {
		breakable := StyleDim.Render("no")
		if e.Breakable {
			breakable = StyleSuccess.Render("yes")
		}
		t.Row(
			fmt.Sprintf("%d", e.Index),
			e.Axis,
			fmt.Sprintf("%.4g", e.Position),
			strings.Join(e.Before, ", "),
			strings.Join(e.After, ", "),
			fmt.Sprintf("[%.4g, %.4g]", e.Min, e.Max),
			siblingList(e.Siblings),
			breakable,
		)
	}
	fmt.Println(t.Render())
}

func siblingList(siblings []int) string {
	if len(siblings) == 0 {
		return "-"
	}
	parts := make([]string, len(siblings))
	for i, s := range siblings {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ", ")
}
