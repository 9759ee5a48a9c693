package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/mappages/internal/logfields"
	"git.home.luguber.info/inful/mappages/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	RunFlags `embed:""`
	Debounce time.Duration `name:"debounce" default:"500ms" help:"Quiet period after a change before regenerating"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.watch(ctx, global, root)
}

func (w *WatchCmd) watch(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := loadConfig(root, w.RunFlags)
	if err != nil {
		return err
	}
	r := newRunner(global, cfg)

	if _, err := r.run(ctx, cfg); err != nil {
		r.logger.Error("Initial generation failed", logfields.Error(err))
	}

	paths := []string{cfg.Input.Path}
	if configPath, _ := root.ConfigPath(); fileExists(configPath) {
		paths = append(paths, configPath)
	}

	watched := cfg.Input.Path
	watcher, err := watch.NewWatcher(paths, w.Debounce, func(ctx context.Context) error {
		return w.regenerate(ctx, root, r, watched)
	}, r.logger)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// regenerate re-reads the config so edits to it apply without a restart.
// The watch set is fixed at startup, so a moved catalog is reported and
// generated once but not followed.
func (w *WatchCmd) regenerate(ctx context.Context, root *CLI, r *runner, watched string) error {
	next, err := loadConfig(root, w.RunFlags)
	if err != nil {
		return err
	}
	if next.Input.Path != watched {
		r.logger.Warn("Catalog path changed; restart watch to follow it",
			slog.String("watched", watched), logfields.Path(next.Input.Path))
	}
	_, err = r.run(ctx, next)
	return err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
