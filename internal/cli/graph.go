package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/render"
	"github.com/matzehuels/aspectpath/pkg/render/nodelink"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

type graphOpts struct {
	output  string
	format  string
	path    []string
	prefer  []string
	only    bool
	weights bool
	session bool
}

// graphCommand creates the graph rendering command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{weights: true}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the aspect connection graph",
		Long: `Graph renders the undirected connection graph with Graphviz. Solutions of a
research line can be highlighted; the output format follows the file extension
(.svg, .dot, .pdf, .png). PDF and PNG output require rsvg-convert.`,
		Example: `  aspectpath graph -o aspects.svg
  aspectpath graph -o line.png --path ignis,hex,aer --only
  aspectpath graph --from-session -o session.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout, DOT unless --format is set)")
	f.StringVar(&opts.format, "format", "", "output format: svg, dot, pdf or png (default from extension)")
	f.StringSliceVar(&opts.path, "path", nil, "research line whose solutions are highlighted")
	f.StringSliceVarP(&opts.prefer, "prefer", "p", nil, "aspects marked as preferred")
	f.BoolVar(&opts.only, "only", false, "draw only the highlighted solutions")
	f.BoolVar(&opts.weights, "weights", true, "label nodes with their weight")
	f.BoolVar(&opts.session, "from-session", false, "highlight the session's research line")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}

	var sess *session.Session
	if opts.session || len(opts.path) > 0 {
		if err := c.withSession(ctx, func(s *session.Session) (bool, error) {
			sess = s
			return false, nil
		}); err != nil {
			return err
		}
	}
	line := opts.path
	if opts.session && len(line) == 0 {
		line = sess.Path
	}
	pref := c.preferred(sess, opts.prefer)

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	var walks [][]solver.Aspect
	if len(line) > 0 {
		strategy, err := solver.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}
		result, err := runner.Plan(ctx, planner.Request{
			Path:      line,
			Preferred: pref,
			Strategy:  strategy,
			Spacer:    cfg.Spacer,
		})
		if err != nil {
			return err
		}
		for _, step := range result.Steps {
			if step.Solution.Found() {
				walks = append(walks, step.Solution.Path)
			}
		}
	}

	dot := nodelink.ToDOT(runner.Graph, nodelink.Options{
		Highlight:     walks,
		Preferred:     pref,
		Weights:       opts.weights,
		Title:         runner.Data.Title,
		HighlightOnly: opts.only,
	})

	format := render.Format(opts.format)
	if format == "" {
		format = render.FormatDOT
		if opts.output != "" {
			format = render.FormatFromPath(opts.output)
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	out, err := nodelink.Render(ctx, dot, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if opts.output == "" {
		_, err := c.Out.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Rendered graph", "nodes", runner.Graph.NodeCount())
	printSuccess(c.Out, "Wrote %s graph", format)
	printFile(c.Out, opts.output)
	return nil
}
