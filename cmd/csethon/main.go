//go:build !android

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"csethon/internal/app"
	"csethon/internal/audio"
	"csethon/internal/config"
	"csethon/internal/content"
	"csethon/internal/desktop"
	"csethon/internal/snapshot"
	"csethon/internal/terminal"
)

// cli holds flag values and what PersistentPreRunE loads from them.
type cli struct {
	configPath  string
	contentPath string
	seed        uint64
	verbose     bool

	logger *zap.Logger
	cfg    config.Config
	doc    *content.Content
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "csethon",
		Short: "CSE-A-THON promo site",
		Long: `csethon plays the CSE-A-THON intro and then shows the event page.

Run without a subcommand to open the desktop window. The page content is
read from a YAML file when --content is given and reloaded when it changes.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runDesktop,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.contentPath, "content", "", "YAML content file (default: built in)")
	root.PersistentFlags().Uint64Var(&c.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(c.tuiCmd(), c.renderCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	if c.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger

	c.cfg, err = config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.seed != 0 {
		c.cfg.Seed = c.seed
	}
	if c.contentPath == "" {
		c.contentPath = c.cfg.Content
	}
	if c.contentPath == "" {
		c.doc = content.Default()
		return nil
	}
	c.doc, err = content.Load(c.contentPath)
	return err
}

func (c *cli) appOptions() app.Options {
	return app.Options{
		Config:  c.cfg,
		Content: c.doc,
		Logger:  c.logger,
	}
}

func (c *cli) runDesktop(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := audio.New(audio.Options{
		Enabled:    c.cfg.Audio.Enabled,
		SampleRate: config.SampleRate,
		Volume:     c.cfg.Audio.Volume,
		Logger:     c.logger,
	})
	defer player.Close()

	opts := desktop.Options{Config: c.cfg, App: c.appOptions(), Logger: c.logger}
	opts.App.Audio = player
	opts.Reload = func(a *app.App) { c.watchContent(ctx, a, c.logger) }
	c.logger.Info("starting desktop", zap.Uint64("seed", c.cfg.Seed))
	return desktop.Run(ctx, opts)
}

// watchContent feeds edits of the content file to a until ctx is done. A
// watcher that cannot start is reported on the CLI logger and skipped; log
// is what the watcher itself logs through.
func (c *cli) watchContent(ctx context.Context, a *app.App, log *zap.Logger) {
	if c.contentPath == "" {
		return
	}
	w, err := content.Watch(ctx, c.contentPath, log, a.Reload)
	if err != nil {
		c.logger.Warn("content reload disabled", zap.Error(err))
		return
	}
	context.AfterFunc(ctx, func() { _ = w.Close() })
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Render the site in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Anything below error would draw over the alternate screen.
			log := c.logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
			opts := c.appOptions()
			opts.Logger = log
			a := app.New(opts)
			defer a.Close()
			c.watchContent(ctx, a, log)
			return terminal.Run(ctx, a, c.cfg.FrameInterval(), log)
		},
	}
}

func (c *cli) renderCmd() *cobra.Command {
	var (
		frames, every int
		dir           string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write frames to PNG files without opening a window",
		Example: `  csethon render --frames 600 --every 60 --dir out
  csethon render --seed 7 --config small.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := snapshot.Options{
				Frames: c.cfg.Snapshot.Frames,
				Every:  c.cfg.Snapshot.Every,
				FPS:    c.cfg.FPS,
				Dir:    c.cfg.Snapshot.Dir,
				Logger: c.logger,
			}
			if cmd.Flags().Changed("frames") {
				opts.Frames = frames
			}
			if cmd.Flags().Changed("every") {
				opts.Every = every
			}
			if cmd.Flags().Changed("dir") {
				opts.Dir = dir
			}
			start := time.Now()
			if c.cfg.Seed != 0 {
				// Seeded renders are reproducible down to the footer year.
				start = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			}
			opts.Start = start
			ao := c.appOptions()
			ao.Start = start
			a := app.New(ao)
			defer a.Close()

			written, err := snapshot.Render(ctx, a, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", len(written), opts.Dir)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", config.SnapshotFrames, "Frames to step")
	cmd.Flags().IntVar(&every, "every", config.SnapshotEvery, "Write every n-th frame")
	cmd.Flags().StringVar(&dir, "dir", config.SnapshotDir, "Output directory")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
