package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/session"
)

// preferCommand creates the command group that edits the session's
// preferred aspects. Preferred aspects weigh nothing during search.
func (c *CLI) preferCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefer",
		Short: "Manage preferred aspects of the session",
	}

	cmd.AddCommand(c.preferEditCommand("add", "Mark aspects as preferred", func(s *session.Session, a string) string {
		s.Prefer(a)
		return "Preferred " + a
	}))
	cmd.AddCommand(c.preferEditCommand("remove", "Unmark preferred aspects", func(s *session.Session, a string) string {
		s.Unprefer(a)
		return "Removed " + a
	}))
	cmd.AddCommand(c.preferEditCommand("toggle", "Toggle preferred aspects", func(s *session.Session, a string) string {
		if s.Toggle(a) {
			return "Preferred " + a
		}
		return "Removed " + a
	}))
	cmd.AddCommand(c.preferListCommand())
	cmd.AddCommand(c.preferClearCommand())

	return cmd
}

func (c *CLI) preferEditCommand(use, short string, edit func(*session.Session, string) string) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <aspect>...",
		Short:             short,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeAspects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := c.loadData(ctx)
			if err != nil {
				return err
			}
			g := data.Graph()
			for _, a := range args {
				if !g.IsValid(a) {
					return fmt.Errorf("unknown aspect %q", a)
				}
			}
			return c.withSession(ctx, func(s *session.Session) (bool, error) {
				for _, a := range args {
					printSuccess(c.Out, "%s", edit(s, a))
				}
				return true, nil
			})
		},
	}
}

func (c *CLI) preferListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preferred aspects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				if len(s.Preferred) == 0 {
					printInfo(c.Out, "No preferred aspects")
					return false, nil
				}
				fmt.Fprintln(c.Out, strings.Join(s.Preferred, "\n"))
				return false, nil
			})
		},
	}
}

func (c *CLI) preferClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all preferred aspects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				s.ClearPreferred()
				printSuccess(c.Out, "Cleared preferred aspects")
				return true, nil
			})
		},
	}
}
