package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve exposes solving, planning, graph rendering and sessions as a JSON API.
Sessions are kept in the configured session store; solutions in the configured
cache. The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			store, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(server.Options{
				Runner:          runner,
				Sessions:        store,
				Logger:          loggerFromContext(ctx),
				SolveTimeout:    cfg.Server.SolveTimeout.Duration,
				SessionTTL:      cfg.Session.TTL.Duration,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			})

			if addr == "" {
				addr = cfg.Server.Addr
			}
			printInfo(c.Out, "Listening on %s", StyleHighlight.Render(addr))
			printDetail(c.Out, "%d aspects · dataset %s", len(runner.Data.Aspects()), runner.Data.Hash()[:12])
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solution cache")

	return cmd
}
