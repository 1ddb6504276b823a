package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	rbio "github.com/matzehuels/rbdraw/pkg/io"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// defaultOutput is the base name used when no --output is given.
const defaultOutput = "tree"

// renderCommand creates the render command for drawing payload documents.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   geometryFlags
		depth   int
		formats string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "render [payload.json]",
		Short: "Draw a red-black tree payload",
		Long: `Draw the tree described by a payload document.

The payload is read from the given file, or from stdin when the argument is
omitted or "-". Each occupied slot is drawn as a circle in its color with its
label; edges connect slots whose parent is also occupied.

Output formats: svg, png, pdf, json, dot, graphviz.`,
		Example: `  rbdraw render tree.json
  rbdraw render tree.json -f svg,png -o out/tree
  rbdraw aa 5 3 8 --payload-out - | rbdraw render -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readPayload(args)
			if err != nil {
				return err
			}

			opts := pipeline.FromConfig(c.Config)
			flags.apply(cmd, &opts)
			opts.Depth = doc.Depth
			if cmd.Flags().Changed("depth") {
				opts.Depth = depth
			}
			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, doc.Nodes, output)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "tree depth (default: from the payload)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats, comma separated (default svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path or base name (default "+defaultOutput+")")
	flags.registerRender(cmd)

	return cmd
}

// runRender draws nodes in every requested format and writes the files.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, nodes render.Nodes, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, "Rendering...")
	spin.start()
	result, err := runner.Execute(ctx, opts, nodes)
	spin.stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered depth-%d tree", result.Layout.Depth())
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.RenderHit)
	c.Logger.Debug("render timing", "layout", result.Stats.LayoutTime, "render", result.Stats.RenderTime)
	return nil
}

// readPayload reads the payload named by args, or stdin.
func readPayload(args []string) (rbio.Document, error) {
	if len(args) == 0 || args[0] == "-" {
		return rbio.ReadPayload(os.Stdin)
	}
	return rbio.ReadPayloadFile(args[0])
}

// artifactPaths maps each format to its output file. A single format whose
// output already carries an extension is written to output verbatim;
// otherwise the format's extension is appended to the base name.
func artifactPaths(formats []string, output string) map[string]string {
	if output == "" {
		output = defaultOutput
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// writeArtifacts writes each artifact and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := artifactPaths(formats, output)
	var written []string
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		path := paths[f]
		if seen[path] {
			continue
		}
		seen[path] = true

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
