package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	likeService  *service.LikeService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, likeService *service.LikeService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		likeService:  likeService,
		logger:       logger,
	}
}

func (h *QuoteHandler) ListQuotes(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	quotes, err := h.quoteService.ListQuotes(c.UserContext(), s.LikedQuoteIDs())
	if err != nil {
		return failPage(c, h.logger, err)
	}

	page := models.QuotesPage{
		User:   profileOf(s.Identity()),
		Quotes: quotes,
	}
	return c.JSON(models.PageResponse(page, s.TakeFlashes()))
}

func (h *QuoteHandler) AddQuote(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	var req models.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidRequestBody)
	}

	if _, err := h.quoteService.AddQuote(c.UserContext(), s.UserID(), req); err != nil {
		return failAndRedirect(c, h.logger, s, err, quotesPath)
	}
	return c.Redirect(quotesPath, fiber.StatusFound)
}

func (h *QuoteHandler) DeleteQuote(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	quoteID, ok := paramID(c)
	if !ok {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidID)
	}

	if err := h.quoteService.DeleteQuote(c.UserContext(), s.UserID(), quoteID); err != nil {
		return failAndRedirect(c, h.logger, s, err, quotesPath)
	}
	return c.Redirect(quotesPath, fiber.StatusFound)
}

// UserQuotes renders one user's quotes.
func (h *QuoteHandler) UserQuotes(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	userID, ok := paramID(c)
	if !ok {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidID)
	}

	user, quotes, err := h.quoteService.UserQuotes(c.UserContext(), userID, s.LikedQuoteIDs())
	if err != nil {
		if _, known := service.FlashMessages(err); known {
			return failAndRedirect(c, h.logger, s, err, quotesPath)
		}
		return failPage(c, h.logger, err)
	}

	page := models.UserQuotesPage{
		User:   models.NewProfileResponse(user),
		Quotes: quotes,
	}
	return c.JSON(models.PageResponse(page, s.TakeFlashes()))
}

func (h *QuoteHandler) Like(c *fiber.Ctx) error {
	s := session.FromCtx(c)

	quoteID, ok := paramID(c)
	if !ok {
		return flashAndRedirect(c, s, quotesPath, MsgInvalidID)
	}

	result, err := h.likeService.Like(c.UserContext(), s, quoteID)
	if err != nil {
		return failAndRedirect(c, h.logger, s, err, quotesPath)
	}
	if result == service.LikeAlreadyLiked {
		s.AddFlash(service.MsgAlreadyLiked)
	}
	return c.Redirect(quotesPath, fiber.StatusFound)
}
