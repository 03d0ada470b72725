package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/async"
	"github.com/alanbriolat/video-fetcher/download"
	"github.com/alanbriolat/video-fetcher/internal/config"
	"github.com/alanbriolat/video-fetcher/internal/console"
	"github.com/alanbriolat/video-fetcher/internal/shell"
	youtube_provider "github.com/alanbriolat/video-fetcher/provider/youtube"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Name:  "video-fetcher",
		Usage: "interactively download videos and playlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "target",
				Usage: "default download directory `DIR`",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "progress-style",
				Usage: "progress display: line, block or bytes",
			},
			&cli.StringFlag{
				Name:  "history-driver",
				Usage: "download history storage: bolt, sqlite or none",
			},
			&cli.StringFlag{
				Name:  "history-path",
				Usage: "download history database `FILE`",
			},
			&cli.StringFlag{
				Name:  "file-template",
				Usage: "filename `TEMPLATE`, e.g. {{.Title}} [{{.ID}}].{{.Ext}}",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(video_fetcher.WithLogger(ctx, logger), cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "list previous downloads, newest first",
				Action: func(c *cli.Context) error {
					cfg, logger, err := setup(c)
					if err != nil {
						return err
					}
					defer logger.Sync()
					return listHistory(os.Stdout, cfg)
				},
			},
		},
		HideHelpCommand: true,
	}

	result := async.Run(func() error { return app.Run(os.Args) })

	err, interrupted := wait(ctx, result, shutdownGrace)
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	if interrupted {
		fmt.Fprintln(os.Stderr)
		os.Exit(130)
	}
	if err != nil {
		os.Exit(1)
	}
}

// shutdownGrace is how long an interrupted transfer gets to remove its partial file and record history.
const shutdownGrace = 5 * time.Second

// wait returns the app's result. Once ctx is cancelled it waits at most grace, since the shell may be blocked
// reading input rather than running a transfer that observes ctx.
func wait(ctx context.Context, result <-chan error, grace time.Duration) (err error, interrupted bool) {
	select {
	case err = <-result:
		return err, false
	case <-ctx.Done():
	}
	select {
	case err = <-result:
	case <-time.After(grace):
	}
	return err, true
}

var flagKeys = map[string]string{
	"target":         config.KeyTarget,
	"progress-style": config.KeyProgressStyle,
	"history-driver": config.KeyHistoryDriver,
	"history-path":   config.KeyHistoryPath,
	"file-template":  config.KeyFileTemplate,
}

// setup resolves the configuration and installs the global logger.
func setup(c *cli.Context) (video_fetcher.Config, *zap.Logger, error) {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	if c.IsSet("verbose") {
		overrides[config.KeyVerbose] = c.Bool("verbose")
	}
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return cfg, nil, err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)
	return cfg, logger, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zapConfig.Build()
}

func run(ctx context.Context, cfg video_fetcher.Config) error {
	logger := video_fetcher.Logger(ctx).Sugar()

	store, err := openHistory(cfg, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorf("failed to close download history: %v", err)
		}
	}()

	downloadConfig, err := video_fetcher.NewDownloadConfig(cfg.FileTemplate)
	if err != nil {
		return err
	}
	catalog := youtube_provider.NewCatalog(&youtube.Client{}, downloadConfig)
	con := console.New(os.Stdin, os.Stdout, cfg.ProgressStyle)

	sh := shell.New(shell.Config{
		Registry:   &video_fetcher.DefaultProviderRegistry,
		Catalog:    catalog,
		Playlists:  catalog,
		Console:    con,
		Downloader: download.NewOrchestrator(catalog, con, store),
		TargetDir:  cfg.TargetDir,
	})
	logger.Debugf("providers: %v", video_fetcher.DefaultProviderRegistry.List())
	return sh.Run(ctx)
}
