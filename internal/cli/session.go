package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/session"
)

// sessionCommand creates the command group that edits the persisted
// research line.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show and edit the session's research line",
		Long: `The session keeps a research line and a set of preferred aspects between
invocations. Select a session with --session (default "default").`,
	}

	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionPathCommand())
	cmd.AddCommand(c.sessionPushCommand())
	cmd.AddCommand(c.sessionPopCommand())
	cmd.AddCommand(c.sessionRemoveCommand())
	cmd.AddCommand(c.sessionClearCommand())
	cmd.AddCommand(c.sessionDeleteCommand())

	return cmd
}

func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				printSession(c, s)
				return false, nil
			})
		},
	}
}

func printSession(c *CLI, s *session.Session) {
	cfg, _ := c.config()
	line := StyleDim.Render("(empty)")
	if len(s.Path) > 0 {
		parts := make([]string, len(s.Path))
		for i, e := range s.Path {
			if e == cfg.Spacer {
				parts[i] = styleSpacer.Render(e)
			} else {
				parts[i] = StyleValue.Render(e)
			}
		}
		line = strings.Join(parts, " ")
	}
	pref := StyleDim.Render("(none)")
	if len(s.Preferred) > 0 {
		pref = stylePreferred.Render(strings.Join(s.Preferred, ", "))
	}

	printKeyValue(c.Out, "Session", s.ID)
	printKeyValue(c.Out, "Line", line)
	printKeyValue(c.Out, "Preferred", pref)
	if !s.ExpiresAt.IsZero() {
		printKeyValue(c.Out, "Expires", s.ExpiresAt.Local().Format(time.DateTime))
	}
}

func (c *CLI) sessionPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the session is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := apperrors.ValidateSessionID(c.sessionID); err != nil {
				return err
			}
			store, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if fs, ok := store.(*session.FileStore); ok {
				fmt.Fprintln(c.Out, fs.SessionPath(c.sessionID))
				return nil
			}
			cfg, _ := c.config()
			fmt.Fprintf(c.Out, "%s:%s\n", cfg.Session.Backend, c.sessionID)
			return nil
		},
	}
}

func (c *CLI) sessionPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "push <aspect|spacer>...",
		Short:             "Append aspects or spacers to the line",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeAspects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			data, err := c.loadData(ctx)
			if err != nil {
				return err
			}
			g := data.Graph()
			for _, a := range args {
				if a != cfg.Spacer && !g.IsValid(a) {
					return fmt.Errorf("unknown aspect %q", a)
				}
			}
			return c.withSession(ctx, func(s *session.Session) (bool, error) {
				s.Push(args...)
				printSession(c, s)
				return true, nil
			})
		},
	}
}

func (c *CLI) sessionPopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pop",
		Short: "Remove the last entry of the line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				if !s.Pop() {
					printInfo(c.Out, "Line is empty")
					return false, nil
				}
				printSession(c, s)
				return true, nil
			})
		},
	}
}

func (c *CLI) sessionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the entry at a 1-based position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				if err := s.RemoveAt(pos - 1); err != nil {
					return false, err
				}
				printSession(c, s)
				return true, nil
			})
		},
	}
}

func (c *CLI) sessionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the line, keeping preferred aspects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session.Session) (bool, error) {
				s.Clear()
				printSuccess(c.Out, "Cleared research line")
				return true, nil
			})
		},
	}
}

func (c *CLI) sessionDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the session from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := apperrors.ValidateSessionID(c.sessionID); err != nil {
				return err
			}
			store, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Delete(ctx, c.sessionID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess(c.Out, "Deleted session %s", c.sessionID)
			return nil
		},
	}
}
