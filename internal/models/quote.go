package models

import (
	"time"
)

type Quote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Author    string    `json:"author" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuoteRequest struct {
	Author  string `json:"author" form:"author"`
	Content string `json:"content" form:"content"`
}

// QuoteView is a quote joined with the display name of the user who posted it.
type QuoteView struct {
	QuoteID   uint   `json:"quote_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	LikeCount int64  `json:"like_count"`
	LikedByMe bool   `json:"liked_by_me" gorm:"-"`
}
