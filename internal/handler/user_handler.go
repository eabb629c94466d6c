package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// MyAccount renders the profile form of the logged in user.
func (h *UserHandler) MyAccount(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	userID, ok := paramID(c)
	if !ok {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidID)
	}

	user, err := h.userService.GetAccount(c.UserContext(), s.UserID(), userID)
	if err != nil {
		if _, known := service.FlashMessages(err); known {
			return failAndRedirect(c, h.logger, s, err, quotesPath)
		}
		return failPage(c, h.logger, err)
	}

	return c.JSON(models.PageResponse(models.NewProfileResponse(user), s.TakeFlashes()))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	userID, ok := paramID(c)
	if !ok {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidID)
	}

	// Validation failures go back to the form.
	back := referrerPath(c, fmt.Sprintf("/my_account/%d", userID))

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return flashAndRedirect(c, s, back, MsgInvalidRequestBody)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), s.UserID(), userID, req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return failAndRedirect(c, h.logger, s, err, back)
		}
		return failAndRedirect(c, h.logger, s, err, quotesPath)
	}

	s.UpdateIdentity(user.FirstName, user.LastName, user.Email)
	return c.Redirect(quotesPath, fiber.StatusFound)
}
