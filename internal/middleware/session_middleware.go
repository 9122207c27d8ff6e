package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the cart session ID.
const SessionCookieName = "cart_session"

// CartSession is a Fiber middleware that guarantees every request carries a
// cart session ID. First-time visitors get a fresh UUID cookie; the ID is
// exposed to handlers via c.Locals("session_id") so cart and checkout
// operations always receive their session explicitly.
func CartSession(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookieName)
		if sid == "" {
			sid = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sid,
				MaxAge:   int(ttl.Seconds()),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		c.Locals("session_id", sid)

		return c.Next()
	}
}
