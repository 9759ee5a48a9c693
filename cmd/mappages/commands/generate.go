package commands

import (
	"context"
	"os/signal"
	"syscall"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	RunFlags `embed:""`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(root, g.RunFlags)
	if err != nil {
		return err
	}

	_, err = newRunner(global, cfg).run(ctx, cfg)
	return err
}
