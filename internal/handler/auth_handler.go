package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Index renders the entry page with any pending flash messages.
func (h *AuthHandler) Index(c *fiber.Ctx) error {
	s := session.FromCtx(c)
	page := models.EntryPage{LoggedIn: s.Authenticated()}
	if page.LoggedIn {
		page.UserID = s.UserID()
	}
	return c.JSON(models.PageResponse(page, s.TakeFlashes()))
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return flashAndRedirect(c, s, entryPath, MsgInvalidRequestBody)
	}

	resp, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return failAndRedirect(c, h.logger, s, err, entryPath)
	}

	if err := h.sessions.Establish(s, identityOf(resp.User), resp.LikedQuoteIDs); err != nil {
		return failAndRedirect(c, h.logger, s, err, entryPath)
	}
	return c.Redirect(quotesPath, fiber.StatusFound)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return flashAndRedirect(c, s, entryPath, MsgInvalidRequestBody)
	}

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return failAndRedirect(c, h.logger, s, err, entryPath)
	}

	if err := h.sessions.Establish(s, identityOf(resp.User), resp.LikedQuoteIDs); err != nil {
		return failAndRedirect(c, h.logger, s, err, entryPath)
	}
	return c.Redirect(quotesPath, fiber.StatusFound)
}

// Logout drops the whole session, logged in or not.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(session.FromCtx(c)); err != nil {
		h.logger.Error("failed to destroy session", zap.Error(err))
	}
	return c.Redirect(entryPath, fiber.StatusFound)
}
