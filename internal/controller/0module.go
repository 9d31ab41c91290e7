package controller

import (
	"go.uber.org/fx"

	controllermeta "github.com/reporthub/backend/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		fx.Invoke(
			RegisterReport,
			RegisterSiteStats,
		),

		// Controllers (meta)
		controllermeta.Module(),
	)
}
