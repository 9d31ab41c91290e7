package render

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("render", fx.Provide(
		NewRenderer,
	))
}
