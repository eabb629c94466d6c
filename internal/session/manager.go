package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	CookieName = "session_id"

	keyUserID    = "user_id"
	keyFirstName = "first_name"
	keyLastName  = "last_name"
	keyEmail     = "email"
	keyLiked     = "liked_quotes"
	keyFlash     = "flash"

	localsKey = "session"
)

type Config struct {
	Expiration   time.Duration
	CookieSecure bool
}

// Manager binds Session values to the Fiber session store.
type Manager struct {
	store *fibersession.Store
}

func NewManager(cfg Config) *Manager {
	store := fibersession.New(fibersession.Config{
		Expiration:     cfg.Expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
	return &Manager{store: store}
}

// Load reads the session bound to the request cookie. A request without a
// cookie gets a fresh anonymous session.
func (m *Manager) Load(c *fiber.Ctx) (*Session, error) {
	raw, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := NewAnonymous()
	s.raw = raw

	if userID, ok := raw.Get(keyUserID).(uint); ok && userID != 0 {
		s.authenticated = true
		s.identity = Identity{
			UserID:    userID,
			FirstName: stringValue(raw.Get(keyFirstName)),
			LastName:  stringValue(raw.Get(keyLastName)),
			Email:     stringValue(raw.Get(keyEmail)),
		}
		if liked, ok := raw.Get(keyLiked).([]uint); ok {
			for _, id := range liked {
				s.liked[id] = struct{}{}
			}
		}
	}

	if flashes, ok := raw.Get(keyFlash).([]string); ok {
		s.flashes = flashes
	}

	return s, nil
}

// Establish binds identity to s under a new session id and replaces the
// liked set.
func (m *Manager) Establish(s *Session, identity Identity, likedQuoteIDs []uint) error {
	if s.raw != nil {
		if err := s.raw.Regenerate(); err != nil {
			return fmt.Errorf("failed to regenerate session: %w", err)
		}
	}

	s.identity = identity
	s.authenticated = true
	s.destroyed = false
	s.liked = make(map[uint]struct{}, len(likedQuoteIDs))
	for _, id := range likedQuoteIDs {
		s.liked[id] = struct{}{}
	}
	s.dirty = true
	return nil
}

// Destroy removes every trace of s from the store and the client.
func (m *Manager) Destroy(s *Session) error {
	s.identity = Identity{}
	s.authenticated = false
	s.liked = make(map[uint]struct{})
	s.flashes = nil
	s.destroyed = true

	if s.raw == nil {
		return nil
	}
	if err := s.raw.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Commit writes s back to the store. It must be called at most once per
// request since saving releases the underlying Fiber session.
func (m *Manager) Commit(s *Session) error {
	if s.raw == nil || s.destroyed {
		return nil
	}
	raw := s.raw

	if s.authenticated {
		raw.Set(keyUserID, s.identity.UserID)
		raw.Set(keyFirstName, s.identity.FirstName)
		raw.Set(keyLastName, s.identity.LastName)
		raw.Set(keyEmail, s.identity.Email)
		raw.Set(keyLiked, s.LikedQuoteIDs())
	} else {
		raw.Delete(keyUserID)
		raw.Delete(keyFirstName)
		raw.Delete(keyLastName)
		raw.Delete(keyEmail)
		raw.Delete(keyLiked)
	}

	if len(s.flashes) > 0 {
		raw.Set(keyFlash, s.flashes)
	} else {
		raw.Delete(keyFlash)
	}

	// Nothing worth a cookie yet.
	if raw.Fresh() && !s.dirty {
		return nil
	}

	if err := raw.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.raw = nil
	return nil
}

// Bind stores s in the request locals.
func Bind(c *fiber.Ctx, s *Session) {
	c.Locals(localsKey, s)
}

// FromCtx returns the session bound by the session middleware, or an
// anonymous one when none was bound.
func FromCtx(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(localsKey).(*Session); ok {
		return s
	}
	return NewAnonymous()
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}
