package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List returns every book without asset payloads, newest first.
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).Select(models.ListColumns).Order("created_at desc, title").Find(&books).Error
	return books, err
}

// FindMeta loads a book without its asset payloads.
func (r *BookRepository) FindMeta(ctx context.Context, id uuid.UUID) (models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Select(models.ListColumns).Where("id = ?", id).First(&book).Error
	return book, err
}

// Find loads a book including asset payloads.
func (r *BookRepository) Find(ctx context.Context, id uuid.UUID) (models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	return book, err
}

// FindMany loads the listed books without asset payloads, keyed by ID.
func (r *BookRepository) FindMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Book, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]models.Book{}, nil
	}
	var books []models.Book
	if err := r.db.WithContext(ctx).Select(models.ListColumns).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return collection.KeyBy(books, func(b models.Book) uuid.UUID { return b.ID }), nil
}

func (r *BookRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update writes the given columns and touches updated_at.
func (r *BookRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Book{Model: models.Model{ID: id}}).Updates(fields).Error
}

// SetAggregate stores the derived rating mean and count.
func (r *BookRepository) SetAggregate(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	return r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"average_rating": avg, "rating_count": count}).Error
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{}).Error
}
