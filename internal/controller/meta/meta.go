package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/pkg/bininfo"
	"github.com/reporthub/backend/internal/server/svr"
	"github.com/reporthub/backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(app *fiber.App, meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	// the liveness probe lives on the unversioned root per the public contract
	app.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(c.HealthService.Status(ctx.UserContext()))
}
