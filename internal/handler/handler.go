package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"go.uber.org/zap"
)

const (
	MsgInvalidID          = "Invalid id"
	MsgInvalidRequestBody = "Invalid request body"

	entryPath  = "/"
	quotesPath = "/quotes"
)

// paramID parses the :id route parameter.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// referrerPath returns the path of a same-host Referer, or fallback.
func referrerPath(c *fiber.Ctx, fallback string) string {
	ref, err := url.Parse(c.Get(fiber.HeaderReferer))
	if err != nil || ref.Path == "" {
		return fallback
	}
	if ref.Host != "" && ref.Host != string(c.Request().Host()) {
		return fallback
	}
	return ref.RequestURI()
}

// flashAndRedirect queues messages for the next page view and redirects.
func flashAndRedirect(c *fiber.Ctx, s *session.Session, to string, messages ...string) error {
	s.AddFlash(messages...)
	return c.Redirect(to, fiber.StatusFound)
}

// failAndRedirect surfaces err as flash messages. Errors that are not meant
// for the user are logged and replaced by a generic message.
func failAndRedirect(c *fiber.Ctx, log *zap.Logger, s *session.Session, err error, to string) error {
	messages, ok := service.FlashMessages(err)
	if !ok {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return flashAndRedirect(c, s, to, messages...)
}

// failPage renders an unexpected error on a page route.
func failPage(c *fiber.Ctx, log *zap.Logger, err error) error {
	log.Error("page failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(service.MsgUnexpected))
}

func identityOf(user models.User) session.Identity {
	return session.Identity{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func profileOf(identity session.Identity) models.ProfileResponse {
	return models.ProfileResponse{
		ID:        identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
	}
}
