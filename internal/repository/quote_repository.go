package repository

import (
	"context"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteViewColumns = "quotes.id AS quote_id, quotes.author, quotes.content, quotes.user_id, " +
	"users.first_name, users.last_name, COUNT(likes.id) AS like_count"

func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.WithContext(ctx).First(&quote, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &quote, nil
}

// ListWithPosters returns every quote with its poster's name and like count,
// newest first.
func (r *QuoteRepository) ListWithPosters(ctx context.Context) ([]models.QuoteView, error) {
	var views []models.QuoteView
	err := r.viewQuery(ctx).Scan(&views).Error
	return views, err
}

func (r *QuoteRepository) ListByUser(ctx context.Context, userID uint) ([]models.QuoteView, error) {
	var views []models.QuoteView
	err := r.viewQuery(ctx).Where("quotes.user_id = ?", userID).Scan(&views).Error
	return views, err
}

// DeleteOwned removes the quote only if userID posted it and returns the
// number of rows removed.
func (r *QuoteRepository) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Quote{})
	return result.RowsAffected, result.Error
}

func (r *QuoteRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("quotes").
		Select(quoteViewColumns).
		Joins("JOIN users ON users.id = quotes.user_id").
		Joins("LEFT JOIN likes ON likes.quote_id = quotes.id").
		Group("quotes.id, users.id").
		Order("quotes.created_at DESC, quotes.id DESC")
}
