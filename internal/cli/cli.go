// Package cli implements the aspectpath command-line interface.
//
// # Commands
//
//   - solve: Solve a research line given as arguments or taken from the session
//   - plan: Interactive research editor with live solutions
//   - aspects: List aspects with weights, recipes and names
//   - graph: Render the connection graph (SVG, DOT, PDF, PNG)
//   - prefer, session: Edit the persisted session
//   - serve: Run the HTTP API
//   - cache, config, completion: Housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/internal/config"
	"github.com/matzehuels/aspectpath/pkg/aspects"
	"github.com/matzehuels/aspectpath/pkg/buildinfo"
	"github.com/matzehuels/aspectpath/pkg/cache"
	"github.com/matzehuels/aspectpath/pkg/planner"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command output. Logs go to the logger's writer.
	Out io.Writer

	configPath string
	dataSource string
	sessionID  string

	cfg  *config.Config
	data *aspects.Data
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Aspectpath plans research lines through the aspect combination graph",
		Long:         `Aspectpath finds the cheapest chain of aspect combinations linking two aspects in exactly the number of steps a research line allows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/aspectpath/config.toml)")
	flags.StringVar(&c.dataSource, "data", "", `recipe data: "default", a JSON/TOML file or an http(s) URL`)
	flags.StringVar(&c.sessionID, "session", session.DefaultID, "session to read and edit")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.aspectsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.preferCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())
	c.registerFlagCompletions(root)

	return root
}

// =============================================================================
// Configuration & Data
// =============================================================================

// config loads the configuration once per process. Flags override the file.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, required := c.configPath, true
	if path == "" {
		p, err := config.Path()
		if err != nil {
			cfg := config.Default()
			c.cfg = &cfg
			return c.cfg, nil
		}
		path, required = p, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if c.dataSource != "" {
		cfg.Data = c.dataSource
	}
	c.Logger.Debug("loaded config", "path", path, "data", cfg.Data)
	c.cfg = &cfg
	return c.cfg, nil
}

// loadData opens the configured dataset, showing a spinner for downloads.
func (c *CLI) loadData(ctx context.Context) (*aspects.Data, error) {
	if c.data != nil {
		return c.data, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	remote := strings.HasPrefix(cfg.Data, "http://") || strings.HasPrefix(cfg.Data, "https://")
	var spinner *Spinner
	if remote {
		spinner = newSpinnerWithContext(ctx, "Fetching "+cfg.Data)
		spinner.Start()
	}
	prog := newProgress(loggerFromContext(ctx))
	data, err := aspects.Open(ctx, cfg.Data)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}
	if remote {
		prog.done("Fetched dataset", "source", cfg.Data)
	}
	c.data = data
	return data, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a planner runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*planner.Runner, error) {
	data, err := c.loadData(ctx)
	if err != nil {
		return nil, err
	}
	cfg, _ := c.config()
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := planner.NewRunner(data, ch, cache.NewScopedKeyer(nil, cfg.Cache.Prefix), loggerFromContext(ctx))
	if cfg.Cache.TTL.Duration > 0 {
		r.TTL = cfg.Cache.TTL.Duration
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.Prefix)
	case config.CacheFile:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNullCache(), nil
	}
}

func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.config()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Sessions
// =============================================================================

func (c *CLI) newSessionStore(ctx context.Context) (session.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	switch cfg.Session.Backend {
	case config.SessionRedis:
		return session.NewRedisStore(ctx, cfg.Session.RedisAddr)
	case config.SessionMongo:
		return session.NewMongoStore(ctx, cfg.Session.MongoURI, cfg.Session.MongoDatabase)
	case config.SessionMemory:
		return session.NewMemoryStore(), nil
	default:
		return session.NewFileStore(cfg.Session.Dir)
	}
}

// withSession loads the selected session, runs fn and stores the session
// again when fn reports a change.
func (c *CLI) withSession(ctx context.Context, fn func(*session.Session) (bool, error)) error {
	store, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, _ := c.config()
	sess, err := session.Load(ctx, store, c.sessionID, cfg.Session.TTL.Duration)
	if err != nil {
		return err
	}
	changed, err := fn(sess)
	if err != nil || !changed {
		return err
	}
	return store.Set(ctx, sess)
}

// preferred merges the configured preferred aspects, the session's set and
// extra aspects from flags.
func (c *CLI) preferred(sess *session.Session, extra []string) solver.Preferred {
	var all []string
	if cfg, err := c.config(); err == nil {
		all = append(all, cfg.Preferred...)
	}
	if sess != nil {
		all = append(all, sess.Preferred...)
	}
	return solver.NewPreferred(append(all, extra...)...)
}
