package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// planCommand creates the interactive research editor.
func (c *CLI) planCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Edit a research line interactively with live solutions",
		Long: `Plan opens an editor on the session's research line. Pick aspects from the
palette, insert spacers and mark preferred aspects; solutions update as the
line changes. The line is saved to the session on exit.

Keys:
  ↑/k ↓/j      move in the palette
  enter/space  append the selected aspect
  h            append a spacer
  x/backspace  remove the last entry
  p            toggle the selected aspect as preferred
  c            clear the line
  q            save and quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			strategy, err := solver.ParseStrategy(cfg.Strategy)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()
			runner.Logger = quietLogger()

			return c.withSession(ctx, func(s *session.Session) (bool, error) {
				model := newPlanModel(ctx, runner, s, c.preferred(nil, nil), cfg.Spacer, strategy)
				final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
				if err != nil {
					return false, err
				}
				m := final.(planModel)
				m.cancelSolve()
				printSession(c, s)
				return true, nil
			})
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solution cache")
	return cmd
}

// =============================================================================
// planModel - Interactive research editor
// =============================================================================

var (
	paletteSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	paletteNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	paneStyle            = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// solvedMsg carries the result of one background plan. Results from an
// older generation are dropped.
type solvedMsg struct {
	gen    int
	result *planner.Result
	err    error
}

type planModel struct {
	ctx      context.Context
	runner   *planner.Runner
	sess     *session.Session
	base     solver.Preferred
	spacer   string
	strategy solver.Strategy

	palette []solver.Aspect
	cursor  int
	offset  int
	height  int

	gen     int
	solving bool
	result  *planner.Result
	err     error
	cancel  context.CancelFunc
	initCmd tea.Cmd
}

// newPlanModel creates the editor for sess. base holds preferred aspects
// from the configuration; they are added to the session's own set.
func newPlanModel(ctx context.Context, r *planner.Runner, sess *session.Session, base solver.Preferred, spacer string, strategy solver.Strategy) planModel {
	m := planModel{
		ctx:      ctx,
		runner:   r,
		sess:     sess,
		base:     base,
		spacer:   spacer,
		strategy: strategy,
		palette:  r.Graph.Aspects(),
		height:   15,
	}
	m, cmd := m.resolve()
	m.initCmd = cmd
	return m
}

func (m planModel) Init() tea.Cmd {
	return m.initCmd
}

func (m planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.scroll()
	case solvedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.solving = false
		m.result, m.err = msg.result, msg.err
	}
	return m, nil
}

func (m planModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.palette)-1 {
			m.cursor++
			m.scroll()
		}
		return m, nil
	case "enter", " ":
		if len(m.palette) == 0 {
			return m, nil
		}
		m.sess.Push(m.palette[m.cursor])
	case "h":
		m.sess.Push(m.spacer)
	case "x", "backspace":
		if !m.sess.Pop() {
			return m, nil
		}
	case "p":
		if len(m.palette) == 0 {
			return m, nil
		}
		m.sess.Toggle(m.palette[m.cursor])
	case "c":
		m.sess.Clear()
	default:
		return m, nil
	}
	return m.resolve()
}

// scroll keeps the cursor inside the visible palette window.
func (m *planModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m planModel) preferred() solver.Preferred {
	return solver.NewPreferred(append(m.base.Sorted(), m.sess.Preferred...)...)
}

// resolve starts a background plan of the current line and invalidates
// any plan still running.
func (m planModel) resolve() (planModel, tea.Cmd) {
	m.cancelSolve()
	m.gen++
	gen := m.gen

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.solving = true

	runner := m.runner
	req := planner.Request{
		Path:      append([]string(nil), m.sess.Path...),
		Preferred: m.preferred(),
		Strategy:  m.strategy,
		Spacer:    m.spacer,
	}
	return m, func() tea.Msg {
		defer cancel()
		result, err := runner.Plan(ctx, req)
		return solvedMsg{gen: gen, result: result, err: err}
	}
}

func (m planModel) cancelSolve() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m planModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Research Planner"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("session " + m.sess.ID))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  ⏎ add  h spacer  x remove  p prefer  c clear  q quit"))
	b.WriteString("\n\n")

	left := paneStyle.Render(m.viewPalette())
	right := paneStyle.Render(m.viewLine() + "\n\n" + m.viewSolutions())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	return b.String()
}

func (m planModel) viewPalette() string {
	pref := m.preferred()
	end := min(m.offset+m.height, len(m.palette))

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		a := m.palette[i]
		w, _ := m.runner.Graph.Weight(a)
		cursor := "  "
		style := paletteNormalStyle
		switch {
		case i == m.cursor:
			cursor = "▸ "
			style = paletteSelectedStyle
		case pref.Contains(a):
			style = stylePreferred
		case m.runner.Graph.Kind(a) == solver.KindPrimal:
			style = stylePrimal
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, style.Render(fmt.Sprintf("%-14s", a)), StyleDim.Render(solver.FormatWeight(w)))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.palette))))
	return b.String()
}

func (m planModel) viewLine() string {
	if len(m.sess.Path) == 0 {
		return StyleDim.Render("Line is empty. Add an aspect to start.")
	}
	parts := make([]string, len(m.sess.Path))
	for i, e := range m.sess.Path {
		if e == m.spacer {
			parts[i] = styleSpacer.Render(e)
		} else {
			parts[i] = StyleValue.Render(e)
		}
	}
	return strings.Join(parts, " ")
}

func (m planModel) viewSolutions() string {
	switch {
	case m.err != nil:
		return styleIconError.Render(iconError) + " " + m.err.Error()
	case m.solving && m.result == nil:
		return StyleDim.Render("Solving…")
	case m.result == nil || len(m.result.Steps) == 0:
		return StyleDim.Render("Add two aspects to see connections.")
	}

	var b strings.Builder
	pref := m.preferred()
	var total float64
	for _, step := range m.result.Steps {
		if !step.Solution.Found() {
			fmt.Fprintf(&b, "%s %s  No solution found\n", styleIconError.Render(iconError), StyleDim.Render(step.Problem.String()))
			continue
		}
		total += step.Solution.Weight
		fmt.Fprintf(&b, "%s %s %s\n", styleIconSuccess.Render(iconSuccess),
			renderPath(step.Solution.Path, pref),
			StyleNumber.Render("("+solver.FormatWeight(step.Solution.Weight)+")"))
	}
	status := fmt.Sprintf("total %s", solver.FormatWeight(total))
	if m.solving {
		status += " · solving…"
	}
	b.WriteString(StyleDim.Render(status))
	return b.String()
}
