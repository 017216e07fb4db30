package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/wrappers/stats"
	"github.com/nbd-wtf/go-nostr"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "nostr-likes",
		Usage:     "shows the events a nostr public key has reacted to",
		UsageText: "nostr-likes [--relay wss://...] <npub>",
		ArgsUsage: "<public_key>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "relay",
				Usage: "relay to query",
				Value: nostrlikes.DefaultRelayURL,
			},
			&cli.StringFlag{
				Name:    "cache-dir",
				Usage:   "directory holding the event cache (default: the user cache directory + " + nostrlikes.CacheNamespace + ")",
				Sources: cli.EnvVars(nostrlikes.CacheDirEnv),
			},
			&cli.StringFlag{
				Name:  "cache-type",
				Usage: "cache backend ('json', 'badger', 'bolt', 'lmdb', 'sqlite', 'memory'), detected from the cache directory when not given",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "how many reactions to fetch",
				Value: nostrlikes.DefaultLimit,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "how long to wait for each relay query",
				Value: nostrlikes.DefaultTimeout,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "how to print resolved events ('debug' or 'json')",
				Value: "debug",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log cache hits, misses and relay queries to stderr",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one <public_key> argument, got %d", c.Args().Len())
	}

	// nothing touches the disk or the network before the key is known to be good
	pk, err := nostrlikes.DecodeNpub(c.Args().First())
	if err != nil {
		return err
	}

	emit, err := printer(c.Writer, c.String("format"))
	if err != nil {
		return err
	}
	limit := int(c.Int("limit"))
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}
	timeout := c.Duration("timeout")
	if timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}

	logger := newLogger(c.Bool("verbose"))

	dir := c.String("cache-dir")
	if dir == "" {
		if dir, err = nostrlikes.DefaultCacheDir(); err != nil {
			return err
		}
	}
	db, typ, err := openStore(dir, c.String("cache-type"), &logger)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Debug().Str("dir", dir).Str("type", typ).Msg("cache loaded")

	url := c.String("relay")
	fmt.Fprintln(c.Writer, url)

	start := time.Now()
	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", nostrlikes.ErrRelayConnect, url, err)
	}
	defer relay.Close()
	logger.Debug().Str("relay", relay.URL).Dur("took", time.Since(start)).Msg("connected")

	fmt.Fprintln(c.Writer, pk.Npub())

	cache := &stats.Wrapper{Store: db}
	resolver := nostrlikes.NewResolver(relay, cache,
		nostrlikes.WithLimit(limit),
		nostrlikes.WithTimeout(timeout),
		nostrlikes.WithLogger(&logger),
	)
	if err := resolver.Run(ctx, pk, emit); err != nil {
		return err
	}

	logger.Debug().
		Int("hits", cache.Hits).
		Int("misses", cache.Misses).
		Int("saved", cache.Saved).
		Dur("took", time.Since(start)).
		Msg("done")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
