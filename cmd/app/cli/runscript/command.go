package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/reporthub/backend/cmd/app/cli"
	script_compact_datafile "github.com/reporthub/backend/cmd/app/cli/runscript/scripts/compact_datafile"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_compact_datafile.Command(depsFn[script_compact_datafile.CommandDeps]()),
		},
	}
}
