package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/ourquotes-backend/internal/handler"
	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/middleware"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Quote *handler.QuoteHandler
	User  *handler.UserHandler
}

func NewFiberApp(h Handlers, sessions *session.Manager, m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ourquotes",
		ErrorHandler: errorHandler(logger),
		// Parsed form values outlive the request in the session and the
		// welcome mail goroutine.
		Immutable:    true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	app.Use(middleware.Sessions(sessions))

	// Public routes
	app.Get("/", h.Auth.Index)
	app.Post("/registration", h.Auth.Register)
	app.Post("/login", h.Auth.Login)
	app.Get("/logout", h.Auth.Logout)

	// Protected routes
	auth := middleware.AuthMiddleware()
	app.Get("/quotes", auth, h.Quote.ListQuotes)
	app.Post("/add_quote", auth, h.Quote.AddQuote)
	app.Get("/delete/:id", auth, h.Quote.DeleteQuote)
	app.Get("/user/:id", auth, h.Quote.UserQuotes)
	app.Get("/like/:id", auth, h.Quote.Like)
	app.Get("/my_account/:id", auth, h.User.MyAccount)
	app.Post("/update/:id", auth, h.User.UpdateProfile)

	return app
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := service.MsgUnexpected

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			message = service.MsgUnexpected
		}

		return c.Status(code).JSON(models.ErrorResponse(message))
	}
}
