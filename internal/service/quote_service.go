package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/repository"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
)

type QuoteService struct {
	quoteRepo QuoteStore
	userRepo  UserStore
	validator *utils.Validator
	metrics   *metrics.Metrics
}

func NewQuoteService(quoteRepo QuoteStore, userRepo UserStore, validator *utils.Validator, m *metrics.Metrics) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		userRepo:  userRepo,
		validator: validator,
		metrics:   m,
	}
}

// ListQuotes returns every quote with its poster. likedIDs marks the quotes
// the viewer already liked.
func (s *QuoteService) ListQuotes(ctx context.Context, likedIDs []uint) ([]models.QuoteView, error) {
	views, err := s.quoteRepo.ListWithPosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return markLiked(views, likedIDs), nil
}

func (s *QuoteService) AddQuote(ctx context.Context, userID uint, req models.QuoteRequest) (*models.Quote, error) {
	if messages := ValidateQuote(s.validator, req); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	quote := &models.Quote{
		Author:  req.Author,
		Content: req.Content,
		UserID:  userID,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.metrics.QuoteCreated()
	return quote, nil
}

// DeleteQuote removes quoteID if actorID posted it. Deleting a quote that
// does not exist is a no-op.
func (s *QuoteService) DeleteQuote(ctx context.Context, actorID, quoteID uint) error {
	affected, err := s.quoteRepo.DeleteOwned(ctx, quoteID, actorID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if affected > 0 {
		s.metrics.QuoteDeleted()
		return nil
	}

	// Nothing deleted, tell a missing quote apart from someone else's.
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find quote: %w", err)
	}
	return &OwnershipError{Resource: "quote", ID: quoteID}
}

// UserQuotes returns the user and the quotes they posted. A user without
// quotes gets an empty list.
func (s *QuoteService) UserQuotes(ctx context.Context, userID uint, likedIDs []uint) (*models.User, []models.QuoteView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	views, err := s.quoteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list user quotes: %w", err)
	}
	return user, markLiked(views, likedIDs), nil
}

func markLiked(views []models.QuoteView, likedIDs []uint) []models.QuoteView {
	if views == nil {
		views = []models.QuoteView{}
	}
	liked := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for i := range views {
		_, views[i].LikedByMe = liked[views[i].QuoteID]
	}
	return views
}
