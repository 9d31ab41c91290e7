package svr

import (
	"github.com/gofiber/fiber/v2"
)

// Root carries the unversioned public surface: report submission and the
// read views.
type Root struct {
	fiber.Router
}

// Meta carries operational endpoints that are not part of the public
// report contract.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*Root, *Meta) {
	root := app.Group("")
	meta := app.Group("/api/_")

	return &Root{Router: root}, &Meta{Router: meta}
}
