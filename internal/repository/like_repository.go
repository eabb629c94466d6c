package repository

import (
	"context"
	"time"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create records a like and reports whether a new row was written. An
// existing (user, quote) pair is left untouched.
func (r *LikeRepository) Create(ctx context.Context, userID, quoteID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"INSERT INTO likes (user_id, quote_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, quote_id) DO NOTHING",
		userID, quoteID, time.Now(),
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) QuoteIDsLikedBy(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("quote_id").
		Pluck("quote_id", &ids).Error
	return ids, err
}
