package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rbdraw/pkg/aatree"
	rbio "github.com/matzehuels/rbdraw/pkg/io"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/render"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// previewWidth is the default terminal preview width in columns.
const previewWidth = 72

// aaCommand creates the aa command, which builds an AA tree and draws it.
func (c *CLI) aaCommand() *cobra.Command {
	var (
		flags      geometryFlags
		formats    string
		output     string
		payloadOut string
		preview    bool
		width      int
	)

	cmd := &cobra.Command{
		Use:   "aa KEY...",
		Short: "Insert keys into an AA tree and draw it",
		Long: `Insert the keys, in order, into an AA tree and draw the result.

Keys are compared as integers when every key parses as one, and as strings
otherwise. A node that hangs off a horizontal link (same level as its parent)
is drawn red; every other node is black.`,
		Example: `  rbdraw aa 4 2 6 1 3 5 7
  rbdraw aa --preview pear apple fig kiwi
  rbdraw aa 10 20 30 --payload-out tree.json -f png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			nodes, depth := buildAATree(args)
			logger.Debug("built AA tree", "keys", len(args), "nodes", len(nodes), "depth", depth)

			doc := rbio.Document{Depth: depth, Nodes: nodes}
			if payloadOut == "-" {
				return rbio.WritePayload(os.Stdout, doc)
			}
			if payloadOut != "" {
				if err := rbio.WritePayloadFile(payloadOut, doc); err != nil {
					return err
				}
				printSuccess("Payload written")
				printFile(payloadOut)
			}

			opts := pipeline.FromConfig(c.Config)
			flags.apply(cmd, &opts)
			opts.Depth = depth

			if preview {
				return c.printPreview(cmd, opts, nodes, width)
			}

			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(ctx, opts, nodes, output)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats, comma separated (default svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path or base name (default "+defaultOutput+")")
	cmd.Flags().StringVar(&payloadOut, "payload-out", "", `also write the payload document here ("-" writes it to stdout and exits)`)
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "draw the tree in the terminal instead of writing files")
	cmd.Flags().IntVar(&width, "width", previewWidth, "preview width in columns")
	flags.registerRender(cmd)

	return cmd
}

// printPreview draws nodes onto a terminal canvas.
func (c *CLI) printPreview(cmd *cobra.Command, opts pipeline.Options, nodes render.Nodes, width int) error {
	runner, err := c.newRunner(cmd.Context())
	if err != nil {
		return err
	}
	defer runner.Close()

	l, err := runner.ComputeLayout(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sink.RenderCanvas(l, nodes, width, opts.Style).Styled())
	return nil
}

// buildAATree inserts keys into an AA tree and returns its payload and depth.
// Keys are integers when all of them parse, strings otherwise.
func buildAATree(keys []string) (render.Nodes, int) {
	ints := make([]int, 0, len(keys))
	for _, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			break
		}
		ints = append(ints, n)
	}

	if len(ints) == len(keys) {
		t := aatree.New[int, struct{}]()
		for _, k := range ints {
			t.Insert(k, struct{}{})
		}
		return t.Payload(nil)
	}

	t := aatree.New[string, struct{}]()
	for _, k := range keys {
		t.Insert(k, struct{}{})
	}
	return t.Payload(nil)
}
