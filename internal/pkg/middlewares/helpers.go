package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// Chained registers middlewares on app in order.
func Chained(app *fiber.App, middlewares ...fiber.Handler) {
	for _, middleware := range middlewares {
		app.Use(middleware)
	}
}
