package meta

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/reporthub/backend/internal/app/appconfig"
)

func RegisterIndex(app *fiber.App, conf *appconfig.Config) {
	index := filepath.Join(conf.StaticDir, "index.html")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})

	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"@link":   "https://github.com/reporthub/backend",
			"message": "Welcome to the ReportHub API",
		})
	})
}
