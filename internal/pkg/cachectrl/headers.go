package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// OptInCustom marks the response as publicly cacheable for ttl, stamping
// Last-Modified with the time the underlying value was computed.
func OptInCustom(ctx *fiber.Ctx, computedAt time.Time, ttl time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(ttl.Seconds())))
	ctx.Set(fiber.HeaderExpires, computedAt.Add(ttl).Format(time.RFC1123))

	ctx.Response().Header.SetLastModified(computedAt)
}
