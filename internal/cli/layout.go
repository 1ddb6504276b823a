package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/heap"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// Layout output formats.
const (
	layoutFormatTable = "table"
	layoutFormatJSON  = "json"
)

// layoutCommand creates the layout command for computing node coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  geometryFlags
		depth  int
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute node coordinates for a perfect binary tree",
		Long: `Compute the position of every slot of a perfect binary tree.

Leaves are packed left to right with gaps chosen by the spacing policy, and
every internal node sits midway between its children, so sibling subtrees
never overlap.`,
		Example: `  rbdraw layout --depth 4
  rbdraw layout -d 5 --spacing linear:10,4 --format json -o layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.FromConfig(c.Config)
			flags.apply(cmd, &opts)
			opts.Depth = depth
			return c.runLayout(cmd.Context(), opts, format, output)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "number of levels")
	cmd.Flags().StringVarP(&format, "format", "f", layoutFormatTable, "output format: table or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	flags.registerLayout(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, format, output string) error {
	if output != "" {
		format = layoutFormatJSON
	}
	if format != layoutFormatTable && format != layoutFormatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q (use table or json)", format)
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	l, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %d slots", l.Len()))

	if format == layoutFormatTable {
		fmt.Println(layoutTable(l))
		printStats(l.Len(), l.Len()-1, hit)
		return nil
	}

	data, err := sink.RenderJSON(l, nil)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Layout written")
	printFile(output)
	printStats(l.Len(), l.Len()-1, hit)
	return nil
}

// layoutTable renders the slot coordinates as a bordered table.
func layoutTable(l layout.Layout) string {
	rows := make([][]string, 0, l.Len())
	for k, p := range l.All() {
		rows = append(rows, []string{
			strconv.Itoa(k),
			strconv.Itoa(heap.Level(k)),
			formatCoord(p.X),
			formatCoord(p.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	numberStyle := lipgloss.NewStyle().Foreground(colorAccent).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Index", "Level", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col < 2:
				return listDimStyle.Align(lipgloss.Right)
			}
			return numberStyle
		}).
		Render()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
