package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mappages/cmd/mappages/commands"
	"git.home.luguber.info/inful/mappages/internal/config"
	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/version"
)

func main() {
	// Dotenv values must be visible before kong resolves env-backed flags.
	if _, err := config.LoadEnvFiles(config.EnvFiles...); err != nil {
		fmt.Fprintf(os.Stderr, "config: failed to load env file: %v\n", err)
		os.Exit(ferrors.ExitConfig)
	}

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("mappages"),
		kong.Description("Generate one static page per map from a TripleA map catalog."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
