package session

import (
	"sort"

	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// Identity is the snapshot of the logged in user kept in the session.
type Identity struct {
	UserID    uint
	FirstName string
	LastName  string
	Email     string
}

// Session is the per-request view of a browser session. It is loaded by the
// session middleware, handed to services explicitly and committed once after
// the handler returns.
type Session struct {
	raw           *fibersession.Session
	identity      Identity
	authenticated bool
	liked         map[uint]struct{}
	flashes       []string
	dirty         bool
	destroyed     bool
}

// NewAnonymous returns a session with no identity attached.
func NewAnonymous() *Session {
	return &Session{liked: make(map[uint]struct{})}
}

// NewAuthenticated returns a session for identity with likedQuoteIDs already
// recorded.
func NewAuthenticated(identity Identity, likedQuoteIDs ...uint) *Session {
	s := NewAnonymous()
	s.identity = identity
	s.authenticated = true
	for _, id := range likedQuoteIDs {
		s.liked[id] = struct{}{}
	}
	return s
}

func (s *Session) Identity() Identity {
	return s.identity
}

func (s *Session) UserID() uint {
	return s.identity.UserID
}

func (s *Session) Authenticated() bool {
	return s.authenticated && !s.destroyed
}

// UpdateIdentity replaces the name and email of the current identity. The
// user id never changes within a session.
func (s *Session) UpdateIdentity(firstName, lastName, email string) {
	s.identity.FirstName = firstName
	s.identity.LastName = lastName
	s.identity.Email = email
	s.dirty = true
}

func (s *Session) HasLiked(quoteID uint) bool {
	_, ok := s.liked[quoteID]
	return ok
}

func (s *Session) MarkLiked(quoteID uint) {
	if s.HasLiked(quoteID) {
		return
	}
	s.liked[quoteID] = struct{}{}
	s.dirty = true
}

// LikedQuoteIDs returns the liked quote ids in ascending order.
func (s *Session) LikedQuoteIDs() []uint {
	ids := make([]uint, 0, len(s.liked))
	for id := range s.liked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Session) AddFlash(messages ...string) {
	if len(messages) == 0 {
		return
	}
	s.flashes = append(s.flashes, messages...)
	s.dirty = true
}

// TakeFlashes returns the pending flash messages and clears the queue.
func (s *Session) TakeFlashes() []string {
	flashes := s.flashes
	if len(flashes) > 0 {
		s.flashes = nil
		s.dirty = true
	}
	return flashes
}
