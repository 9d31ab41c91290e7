package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model/cache"
	"github.com/reporthub/backend/internal/pkg/cachectrl"
	"github.com/reporthub/backend/internal/server/svr"
	"github.com/reporthub/backend/internal/service"
)

type SiteStats struct {
	fx.In

	SiteStatsService *service.SiteStats
}

func RegisterSiteStats(root *svr.Root, c SiteStats) {
	root.Get("/stats", c.Stats)
}

func (c *SiteStats) Stats(ctx *fiber.Ctx) error {
	stats, err := c.SiteStatsService.GetSiteStats(ctx.UserContext())
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("["+constant.SiteStatsCacheKey+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptInCustom(ctx, lastModifiedTime, constant.SiteStatsCacheTTL)

	return ctx.JSON(stats)
}
