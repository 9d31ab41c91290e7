package script_compact_datafile

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/infra"
	"github.com/reporthub/backend/internal/repo"
)

type CommandDeps struct {
	fx.In

	DataFile   *infra.DataFile
	ReportRepo *repo.Report
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "compact_datafile",
		Description: "rewrite the report data file: drop malformed or duplicate entries and compact the document",
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn())
		},
	}
}
