package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst/layout"
	"github.com/matzehuels/sunburst/pkg/sunburst/styles"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// minListHeight is the smallest number of table rows shown.
const minListHeight = 5

// =============================================================================
// Command
// =============================================================================

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   renderFlags
		plain   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse arcs and their label placements",
		Long: `Lay out a hierarchy and browse every arc together with its label placement.

Arrow keys move through the arcs; the panel below the table shows the
selected label's anchor, bounding box and whether it fits its arc.
Use --plain to print the table without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Render)
			model, err := c.loadArcList(cmd.Context(), args[0], opts, noCache)
			if err != nil {
				return err
			}
			if plain {
				model.Height = len(model.Rows)
				fmt.Fprintln(cmd.OutOrStdout(), model.table())
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.registerLayout(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive view")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadArcList loads input, computes (or fetches) its layout and places every
// label.
func (c *CLI) loadArcList(ctx context.Context, input string, opts pipeline.Options, noCache bool) (ArcListModel, error) {
	data, format, err := readInput(input, opts.InputFormat)
	if err != nil {
		return ArcListModel{}, err
	}
	opts.Input = data
	opts.InputFormat = string(format)
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return ArcListModel{}, err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return ArcListModel{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	root, err := pipeline.Load(ctx, opts)
	if err != nil {
		return ArcListModel{}, err
	}
	hash, err := pipeline.InputHash(root)
	if err != nil {
		return ArcListModel{}, err
	}
	l, _, err := runner.LayoutWithCacheInfo(ctx, root, hash, opts)
	if err != nil {
		return ArcListModel{}, fmt.Errorf("layout: %w", err)
	}

	m, err := pipeline.Measurer(opts.Measure)
	if err != nil {
		return ArcListModel{}, err
	}
	labels, err := l.Labels(label.NewPlacer(m, label.FontRef{Size: opts.FontSize}))
	if err != nil {
		return ArcListModel{}, err
	}
	return NewArcListModel(input, l, labels), nil
}

// =============================================================================
// ArcListModel - Interactive arc browser
// =============================================================================

// ArcRow is one arc with its placed label.
type ArcRow struct {
	Arc    layout.Arc
	Label  label.Result
	Center geom.Point
}

// Fits reports whether the label box lies inside its arc.
func (r ArcRow) Fits() bool {
	return styles.Fits(r.Arc.Segment, r.Center, r.Label.Bounds())
}

// ArcListModel is the bubbletea model for browsing arcs.
type ArcListModel struct {
	Title  string
	Rows   []ArcRow
	Cursor int
	Height int
	Offset int
}

// NewArcListModel pairs arcs with labels. labels must be in arc order, as
// returned by layout.Layout.Labels.
func NewArcListModel(title string, l layout.Layout, labels []label.Result) ArcListModel {
	rows := make([]ArcRow, 0, len(l.Arcs))
	for i, a := range l.Arcs {
		r := ArcRow{Arc: a, Center: l.Center}
		if i < len(labels) {
			r.Label = labels[i]
		}
		rows = append(rows, r)
	}
	return ArcListModel{Title: title, Rows: rows, Height: 15}
}

func (m ArcListModel) Init() tea.Cmd {
	return nil
}

func (m ArcListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		}
	case tea.WindowSizeMsg:
		// Title, help, detail panel and borders take the remaining lines.
		m.Height = max(msg.Height-14, minListHeight)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *ArcListModel) move(delta int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ArcListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Arcs of " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.table())
	b.WriteString("\n")
	if len(m.Rows) > 0 {
		b.WriteString(m.detail(m.Rows[m.Cursor]))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	}
	return b.String()
}

// table renders the visible window of rows.
func (m ArcListModel) table() string {
	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		fits := "✓"
		if !r.Fits() {
			fits = "—"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", max(r.Arc.Depth-1, 0)) + r.Arc.Label,
			fmt.Sprintf("%d", r.Arc.Depth),
			fmt.Sprintf("%g", r.Arc.Value),
			fmt.Sprintf("%.1f°", r.Arc.Segment.Sweep()*180/math.Pi),
			fmt.Sprintf("%.1f, %.1f", r.Label.Placement.Anchor.X, r.Label.Placement.Anchor.Y),
			fmt.Sprintf("%.0fx%.0f", r.Label.Width, r.Label.Height),
			fits,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Arc", "Depth", "Value", "Sweep", "Anchor", "Size", "Fits").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.Rows[idx].Fits() {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})
	return t.Render()
}

// detail renders the selected arc's segment and label geometry.
func (m ArcListModel) detail(r ArcRow) string {
	seg := r.Arc.Segment
	bounds := r.Label.Bounds()
	lines := []string{
		StyleTitle.Render(r.Arc.ID),
		fmt.Sprintf("  segment   %.3f → %.3f rad, r %.1f → %.1f", seg.StartAngle, seg.EndAngle, seg.InnerRadius, seg.OuterRadius),
		fmt.Sprintf("  anchor    %.2f, %.2f (%s/%s)", r.Label.Placement.Anchor.X, r.Label.Placement.Anchor.Y, r.Label.Placement.HAlign, r.Label.Placement.VAlign),
		fmt.Sprintf("  bounds    x %.2f y %.2f w %.2f h %.2f", bounds.X, bounds.Y, bounds.W, bounds.H),
	}
	if !r.Fits() {
		lines = append(lines, StyleWarning.Render("  label overflows its arc"))
	}
	return strings.Join(lines, "\n")
}
