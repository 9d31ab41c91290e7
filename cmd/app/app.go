package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/reporthub/backend/cmd/app/cli/runscript"
	"github.com/reporthub/backend/cmd/app/server"
	"github.com/reporthub/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "rhbackend",
		Description: "The ReportHub Backend. Ingests test-run reports from remote executors, persists them to a file-mirrored store, and serves JSON and HTML views. Built with Go, fiber and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
