package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbdraw/pkg/aatree"
	rbio "github.com/matzehuels/rbdraw/pkg/io"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// tuiCommand creates the interactive AA tree builder.
func (c *CLI) tuiCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tui [KEY...]",
		Short: "Build an AA tree interactively",
		Long: `Open an interactive AA tree builder.

Type an integer and press enter to insert it; the tree is redrawn after every
insertion. Press ctrl+s to save the payload document and quit, or esc to quit
without saving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("key %q is not an integer", a)
				}
				keys[i] = n
			}

			m := NewAABuilderModel(pipeline.FromConfig(c.Config), keys)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			fm, ok := final.(AABuilderModel)
			if !ok || !fm.Saved {
				return nil
			}
			nodes, depth := fm.Tree.Payload(nil)
			if err := rbio.WritePayloadFile(output, rbio.Document{Depth: depth, Nodes: nodes}); err != nil {
				return err
			}
			printSuccess("Saved %d keys", fm.Tree.Len())
			printFile(output)
			printNextStep("Render it", "rbdraw render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput+".json", "payload file written on save")
	return cmd
}

// =============================================================================
// AABuilderModel - Interactive AA tree builder
// =============================================================================

// AABuilderModel is the bubbletea model for the interactive AA tree builder.
type AABuilderModel struct {
	Tree   *aatree.Tree[int, struct{}]
	Input  string
	Width  int
	Saved  bool
	Last   int
	opts   pipeline.Options
	canvas string
	err    error
}

// NewAABuilderModel creates a builder seeded with keys.
func NewAABuilderModel(opts pipeline.Options, keys []int) AABuilderModel {
	m := AABuilderModel{
		Tree:  aatree.New[int, struct{}](),
		Width: previewWidth,
		opts:  opts,
	}
	for _, k := range keys {
		m.Tree.Insert(k, struct{}{})
		m.Last = k
	}
	m.redraw()
	return m
}

func (m AABuilderModel) Init() tea.Cmd {
	return nil
}

func (m AABuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			m.Saved = true
			return m, tea.Quit
		case "enter":
			m.insert()
		case "backspace":
			if m.Input != "" {
				m.Input = m.Input[:len(m.Input)-1]
			}
		default:
			if msg.Type == tea.KeyRunes {
				for _, r := range msg.Runes {
					if (r >= '0' && r <= '9') || (r == '-' && m.Input == "") {
						m.Input += string(r)
					}
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-2, 20)
		m.redraw()
	}
	return m, nil
}

// insert adds the typed key to the tree.
func (m *AABuilderModel) insert() {
	if m.Input == "" {
		return
	}
	n, err := strconv.Atoi(m.Input)
	m.Input = ""
	if err != nil {
		m.err = fmt.Errorf("not an integer")
		return
	}
	m.err = nil
	m.Tree.Insert(n, struct{}{})
	m.Last = n
	m.redraw()
}

// redraw recomputes the terminal preview.
func (m *AABuilderModel) redraw() {
	nodes, depth := m.Tree.Payload(nil)
	if depth == 0 {
		m.canvas = ""
		return
	}

	opts := m.opts
	opts.Depth = depth
	if err := opts.ValidateForLayout(); err != nil {
		m.err = err
		return
	}
	p, err := opts.Params()
	if err != nil {
		m.err = err
		return
	}
	l, err := layout.Compute(p)
	if err != nil {
		m.err = err
		return
	}
	m.canvas = sink.RenderCanvas(l, nodes, m.Width, opts.Style).Styled()
}

func (m AABuilderModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("AA Tree Builder"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type a key  ⏎ insert  ctrl+s save  esc quit"))
	b.WriteString("\n\n")

	if m.canvas == "" {
		b.WriteString(listDimStyle.Render("  (empty tree)"))
	} else {
		b.WriteString(m.canvas)
	}
	b.WriteString("\n\n")

	if m.Tree.Len() > 0 {
		b.WriteString(listNormalStyle.Render(fmt.Sprintf("  %d keys · height %d · last %d", m.Tree.Len(), m.Tree.Height(), m.Last)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(StyleWarning.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(listSelectedStyle.Render("> " + m.Input))
	b.WriteString("\n")

	return b.String()
}
