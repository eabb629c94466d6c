package service

import (
	"context"
	"testing"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"github.com/sefazor/ourquotes-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuote(t *testing.T, store *testutil.Store, userID uint) *models.Quote {
	t.Helper()
	quote := &models.Quote{Author: "Seneca", Content: "Luck is what happens when preparation meets opportunity", UserID: userID}
	require.NoError(t, store.Quotes().Create(context.Background(), quote))
	return quote
}

func TestLikeTwiceWritesOnce(t *testing.T) {
	store := testutil.NewStore()
	svc := NewLikeService(store.Likes(), store.Quotes(), nil)
	ada := seedUser(t, store, "Ada", "Lovelace", "ada@example.com")
	quote := seedQuote(t, store, ada.ID)
	sess := session.NewAuthenticated(session.Identity{UserID: ada.ID})

	result, err := svc.Like(context.Background(), sess, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeInserted, result)

	result, err = svc.Like(context.Background(), sess, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeAlreadyLiked, result)

	assert.Equal(t, 1, store.LikeCount())
}

func TestLikeDistinctQuotes(t *testing.T) {
	store := testutil.NewStore()
	svc := NewLikeService(store.Likes(), store.Quotes(), nil)
	ada := seedUser(t, store, "Ada", "Lovelace", "ada@example.com")
	first := seedQuote(t, store, ada.ID)
	second := seedQuote(t, store, ada.ID)
	sess := session.NewAuthenticated(session.Identity{UserID: ada.ID})

	for _, id := range []uint{first.ID, second.ID} {
		result, err := svc.Like(context.Background(), sess, id)
		require.NoError(t, err)
		assert.Equal(t, LikeInserted, result)
	}

	assert.Equal(t, 2, store.LikeCount())
	assert.Equal(t, []uint{first.ID, second.ID}, sess.LikedQuoteIDs())
}

func TestLikeAcrossSessions(t *testing.T) {
	store := testutil.NewStore()
	svc := NewLikeService(store.Likes(), store.Quotes(), nil)
	ada := seedUser(t, store, "Ada", "Lovelace", "ada@example.com")
	quote := seedQuote(t, store, ada.ID)

	// a second browser does not know about the first like
	for _, sess := range []*session.Session{
		session.NewAuthenticated(session.Identity{UserID: ada.ID}),
		session.NewAuthenticated(session.Identity{UserID: ada.ID}),
	} {
		_, err := svc.Like(context.Background(), sess, quote.ID)
		require.NoError(t, err)
		assert.True(t, sess.HasLiked(quote.ID))
	}

	assert.Equal(t, 1, store.LikeCount())
}

func TestLikeMissingQuote(t *testing.T) {
	store := testutil.NewStore()
	svc := NewLikeService(store.Likes(), store.Quotes(), nil)
	sess := session.NewAuthenticated(session.Identity{UserID: 1})

	result, err := svc.Like(context.Background(), sess, 77)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
	assert.Equal(t, LikeUnknown, result)
	assert.Equal(t, "unknown", result.String())
	assert.False(t, sess.HasLiked(77))
	assert.Equal(t, 0, store.LikeCount())
}
