package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/internal/config"
	"github.com/matzehuels/aspectpath/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the solution cache",
	}
	cmd.AddCommand(
		c.cacheClearCommand(),
		c.cachePruneCommand(),
		c.cacheStatsCommand(),
		c.cachePathCommand(),
	)
	return cmd
}

// openCache opens the configured backend. It returns nil when caching is
// disabled.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, *config.Config, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache.Backend == config.CacheNone {
		printInfo(c.Out, "Caching is disabled")
		return nil, cfg, nil
	}
	ch, err := c.newCache(ctx, false)
	return ch, cfg, err
}

// fileCache returns ch as a file cache, or reports that the backend
// expires entries on its own.
func (c *CLI) fileCache(ch cache.Cache, cfg *config.Config) (*cache.FileCache, bool) {
	fc, ok := ch.(*cache.FileCache)
	if !ok {
		printInfo(c.Out, "The %s backend expires entries itself", cfg.Cache.Backend)
	}
	return fc, ok
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, cfg, err := c.openCache(cmd.Context())
			if err != nil || ch == nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", cfg.Cache.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.Out, "Cleared solution cache")
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail(c.Out, "Directory: %s", fc.Dir())
			} else {
				printDetail(c.Out, "Redis: %s (prefix %s)", cfg.Cache.RedisAddr, cfg.Cache.Prefix)
			}
			return nil
		},
	}
}

func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired and unreadable cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, cfg, err := c.openCache(cmd.Context())
			if err != nil || ch == nil {
				return err
			}
			defer ch.Close()
			fc, ok := c.fileCache(ch, cfg)
			if !ok {
				return nil
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			n, err := fc.Prune(cmd.Context())
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			prog.done("Pruned cache", "removed", n)
			printSuccess(c.Out, "Removed %d stale %s", n, plural(n, "entry", "entries"))
			return nil
		},
	}
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, cfg, err := c.openCache(cmd.Context())
			if err != nil || ch == nil {
				return err
			}
			defer ch.Close()
			fc, ok := c.fileCache(ch, cfg)
			if !ok {
				return nil
			}

			st, err := fc.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			printKeyValue(c.Out, "Directory", fc.Dir())
			printKeyValue(c.Out, "Entries", strconv.Itoa(st.Entries))
			printKeyValue(c.Out, "Expired", strconv.Itoa(st.Expired))
			printKeyValue(c.Out, "Size", humanize.IBytes(uint64(st.Bytes)))
			if st.Expired > 0 {
				printNextStep(c.Out, "Reclaim space", "aspectpath cache prune")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
