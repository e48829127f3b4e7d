package cli

import (
	"cmp"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

type solveOpts struct {
	prefer   []string
	strategy string
	spacer   string
	jsonOut  bool
	noCache  bool
	refresh  bool
	save     bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{}

	cmd := &cobra.Command{
		Use:   "solve [aspect...]",
		Short: "Find the cheapest connections for a research line",
		Long: `Solve finds, for every pair of consecutive aspects in the line, the cheapest
chain of connected aspects whose length matches the number of spacers between
them. Without arguments the current session's line is solved.`,
		Example: `  aspectpath solve ignis hex aer
  aspectpath solve aqua hex hex lux --prefer victus
  aspectpath solve --json`,
		ValidArgsFunction: c.completeAspects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.prefer, "prefer", "p", nil, "aspects that cost nothing (repeatable)")
	f.StringVar(&opts.strategy, "strategy", "", `search strategy: "dfs" or "layered"`)
	f.StringVar(&opts.spacer, "spacer", "", "empty-slot token (default from config, \"hex\")")
	f.BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the solution cache")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached solutions and recompute them")
	f.BoolVar(&opts.save, "save", false, "store the given line in the session")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, args []string, opts solveOpts) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}

	var sess *session.Session
	err = c.withSession(ctx, func(s *session.Session) (bool, error) {
		sess = s
		if len(args) > 0 && opts.save {
			s.SetPath(args)
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	path := args
	if len(path) == 0 {
		path = sess.Path
	}
	if len(path) < 2 {
		return fmt.Errorf("a research line needs at least two aspects; pass them as arguments or use %q", appName+" session push")
	}

	strategy, err := solver.ParseStrategy(cmp.Or(opts.strategy, cfg.Strategy))
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	pref := c.preferred(sess, opts.prefer)
	result, err := runner.Plan(ctx, planner.Request{
		Path:      path,
		Preferred: pref,
		Refresh:   opts.refresh,
		Strategy:  strategy,
		Spacer:    cmp.Or(opts.spacer, cfg.Spacer),
	})
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSolveResult(c, result, pref)
	return nil
}

func printSolveResult(c *CLI, result *planner.Result, pref solver.Preferred) {
	for _, step := range result.Steps {
		printStep(c.Out, step, pref)
	}
	printStats(c.Out, result.Stats)
	if !result.Found() {
		printWarning(c.Out, "Some connections are impossible at this length")
		printNextStep(c.Out, "Try a longer gap", appName+" solve <a> hex hex <b>")
	}
}

// completeAspects completes aspect identifiers from the configured dataset.
func (c *CLI) completeAspects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	data, err := c.loadData(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return data.Aspects(), cobra.ShellCompDirectiveNoFileComp
}

