package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/repository"
	"github.com/sefazor/ourquotes-backend/internal/session"
)

type LikeResult int

const (
	// LikeUnknown is only returned together with an error.
	LikeUnknown LikeResult = iota
	LikeInserted
	LikeAlreadyLiked
)

func (r LikeResult) String() string {
	switch r {
	case LikeInserted:
		return "inserted"
	case LikeAlreadyLiked:
		return "already_liked"
	}
	return "unknown"
}

type LikeService struct {
	likeRepo  LikeStore
	quoteRepo QuoteStore
	metrics   *metrics.Metrics
}

func NewLikeService(likeRepo LikeStore, quoteRepo QuoteStore, m *metrics.Metrics) *LikeService {
	return &LikeService{
		likeRepo:  likeRepo,
		quoteRepo: quoteRepo,
		metrics:   m,
	}
}

// Like records that the session user likes quoteID. The session set is
// consulted first so a repeat like costs no query, and the store's unique
// constraint settles the rest.
func (s *LikeService) Like(ctx context.Context, sess *session.Session, quoteID uint) (LikeResult, error) {
	if sess.HasLiked(quoteID) {
		s.metrics.Like(LikeAlreadyLiked.String())
		return LikeAlreadyLiked, nil
	}

	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LikeUnknown, ErrQuoteNotFound
		}
		return LikeUnknown, fmt.Errorf("find quote: %w", err)
	}

	inserted, err := s.likeRepo.Create(ctx, sess.UserID(), quoteID)
	if err != nil {
		return LikeUnknown, fmt.Errorf("create like: %w", err)
	}

	sess.MarkLiked(quoteID)

	result := LikeAlreadyLiked
	if inserted {
		result = LikeInserted
	}
	s.metrics.Like(result.String())
	return result, nil
}
