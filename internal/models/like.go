package models

import (
	"time"
)

// Like records that a user endorsed a quote. The (UserID, QuoteID) pair is unique.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_quote"`
	QuoteID   uint      `json:"quote_id" gorm:"not null;uniqueIndex:idx_likes_user_quote"`
	CreatedAt time.Time `json:"created_at"`
}
