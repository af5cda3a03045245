package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Find(ctx context.Context, userID, bookID uuid.UUID) (models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&rating).Error
	return rating, err
}

func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) SetScore(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Model(rating).Select("score", "updated_at").Updates(rating).Error
}

// Aggregate returns the mean score and number of ratings for a book.
func (r *RatingRepository) Aggregate(ctx context.Context, bookID uuid.UUID) (avg float64, count int, err error) {
	var row struct {
		Avg   sql.NullFloat64
		Count int64
	}
	err = r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(score) AS avg, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	return row.Avg.Float64, int(row.Count), err
}

func (r *RatingRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.Rating{}).Error
}
