package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/session"
)

// Sessions loads the browser session before the handler runs and commits it
// afterwards, even when the handler returned an error.
func Sessions(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := manager.Load(c)
		if err != nil {
			return err
		}
		session.Bind(c, s)

		err = c.Next()

		if commitErr := manager.Commit(s); commitErr != nil && err == nil {
			err = commitErr
		}
		return err
	}
}
