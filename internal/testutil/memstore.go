// Package testutil holds in-memory fakes of the persistence gateway.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/repository"
)

// Store keeps users, quotes and likes in memory with the same constraints as
// the database schema: unique emails, one like per (user, quote) and likes
// removed along with their quote.
type Store struct {
	mu     sync.Mutex
	users  map[uint]models.User
	quotes map[uint]models.Quote
	likes  map[likeKey]time.Time
	nextID uint

	// Err, when set, is returned by every call.
	Err error
}

type likeKey struct {
	userID  uint
	quoteID uint
}

func NewStore() *Store {
	return &Store{
		users:  make(map[uint]models.User),
		quotes: make(map[uint]models.Quote),
		likes:  make(map[likeKey]time.Time),
	}
}

func (s *Store) Users() *UserStore   { return &UserStore{s} }
func (s *Store) Quotes() *QuoteStore { return &QuoteStore{s} }
func (s *Store) Likes() *LikeStore   { return &LikeStore{s} }

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) LikeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

func (s *Store) QuoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}

type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *models.User) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (u *UserStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return u.EmailTakenByOther(ctx, email, 0)
}

func (u *UserStore) EmailTakenByOther(_ context.Context, email string, excludeID uint) (bool, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for id, user := range s.users {
		if user.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (u *UserStore) UpdateProfile(_ context.Context, id uint, firstName, lastName, email string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Email == email {
			return repository.ErrDuplicate
		}
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

type QuoteStore struct{ s *Store }

func (q *QuoteStore) Create(_ context.Context, quote *models.Quote) error {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	quote.ID = s.id()
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = quote.CreatedAt
	s.quotes[quote.ID] = *quote
	return nil
}

func (q *QuoteStore) GetByID(_ context.Context, id uint) (*models.Quote, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	quote, ok := s.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &quote, nil
}

func (q *QuoteStore) ListWithPosters(_ context.Context) ([]models.QuoteView, error) {
	return q.list(func(models.Quote) bool { return true })
}

func (q *QuoteStore) ListByUser(_ context.Context, userID uint) ([]models.QuoteView, error) {
	return q.list(func(quote models.Quote) bool { return quote.UserID == userID })
}

func (q *QuoteStore) DeleteOwned(_ context.Context, id, userID uint) (int64, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	quote, ok := s.quotes[id]
	if !ok || quote.UserID != userID {
		return 0, nil
	}
	delete(s.quotes, id)
	for key := range s.likes {
		if key.quoteID == id {
			delete(s.likes, key)
		}
	}
	return 1, nil
}

func (q *QuoteStore) list(keep func(models.Quote) bool) ([]models.QuoteView, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	views := []models.QuoteView{}
	for _, quote := range s.quotes {
		if !keep(quote) {
			continue
		}
		poster, ok := s.users[quote.UserID]
		if !ok {
			continue
		}
		var count int64
		for key := range s.likes {
			if key.quoteID == quote.ID {
				count++
			}
		}
		views = append(views, models.QuoteView{
			QuoteID:   quote.ID,
			Author:    quote.Author,
			Content:   quote.Content,
			UserID:    quote.UserID,
			FirstName: poster.FirstName,
			LastName:  poster.LastName,
			LikeCount: count,
		})
	}
	// newest first
	sort.Slice(views, func(i, j int) bool { return views[i].QuoteID > views[j].QuoteID })
	return views, nil
}

type LikeStore struct{ s *Store }

func (l *LikeStore) Create(_ context.Context, userID, quoteID uint) (bool, error) {
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	key := likeKey{userID: userID, quoteID: quoteID}
	if _, ok := s.likes[key]; ok {
		return false, nil
	}
	s.likes[key] = time.Now()
	return true, nil
}

func (l *LikeStore) QuoteIDsLikedBy(_ context.Context, userID uint) ([]uint, error) {
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	ids := []uint{}
	for key := range s.likes {
		if key.userID == userID {
			ids = append(ids, key.quoteID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
