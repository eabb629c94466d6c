package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/session"
)

// AuthMiddleware sends visitors without a logged in session back to the
// entry page.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.FromCtx(c).Authenticated() {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}
