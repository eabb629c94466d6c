package service

import (
	"context"

	"github.com/sefazor/ourquotes-backend/internal/models"
)

// UserStore is the user half of the persistence gateway.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, excludeID uint) (bool, error)
	UpdateProfile(ctx context.Context, id uint, firstName, lastName, email string) error
}

type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uint) (*models.Quote, error)
	ListWithPosters(ctx context.Context) ([]models.QuoteView, error)
	ListByUser(ctx context.Context, userID uint) ([]models.QuoteView, error)
	DeleteOwned(ctx context.Context, id, userID uint) (int64, error)
}

type LikeStore interface {
	Create(ctx context.Context, userID, quoteID uint) (bool, error)
	QuoteIDsLikedBy(ctx context.Context, userID uint) ([]uint, error)
}

// Mailer sends the optional welcome email.
type Mailer interface {
	SendWelcomeEmail(email, firstName string) error
}
