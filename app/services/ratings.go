package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/event"
)

const (
	MinScore = 1
	MaxScore = 5
)

// RatingService keeps one rating per (user, book) and the book's aggregate
// in step with it.
type RatingService struct {
	db     *gorm.DB
	events *event.Dispatcher
	now    Clock
}

func NewRatingService(db *gorm.DB, events *event.Dispatcher, now Clock) *RatingService {
	return &RatingService{db: db, events: events, now: clockOrDefault(now)}
}

// RatingResult is the stored rating with the book's new aggregate.
type RatingResult struct {
	Rating        models.Rating `json:"rating"`
	AverageRating float64       `json:"average_rating"`
	RatingCount   int           `json:"rating_count"`
}

// Submit creates or replaces userID's rating of bookID.
func (s *RatingService) Submit(ctx context.Context, userID, bookID uuid.UUID, score int) (RatingResult, error) {
	if score < MinScore || score > MaxScore {
		return RatingResult{}, fmt.Errorf("%w: score must be between %d and %d", ErrValidation, MinScore, MaxScore)
	}

	var res RatingResult
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		ok, err := repositories.NewBookRepository(tx).Exists(ctx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return errBookNotFound
		}

		ratings := repositories.NewRatingRepository(tx)
		now := s.now()
		rating, err := ratings.Find(ctx, userID, bookID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = models.Rating{UserID: userID, BookID: bookID, Score: score, UpdatedAt: now}
			rating.CreatedAt = now
			err = ratings.Create(ctx, &rating)
		case err == nil:
			rating.Score, rating.UpdatedAt = score, now
			err = ratings.SetScore(ctx, &rating)
		}
		if err != nil {
			return err
		}

		res.Rating = rating
		res.AverageRating, res.RatingCount, err = recompute(ctx, tx, bookID)
		return err
	})
	if err != nil {
		return RatingResult{}, err
	}

	s.events.Fire(ctx, event.RatingSubmitted, RatingSubmitted{
		UserID:  userID,
		BookID:  bookID,
		Score:   score,
		Average: res.AverageRating,
		Count:   res.RatingCount,
	})
	return res, nil
}

// recompute writes the mean score and rating count of bookID onto the book.
// Every rating write goes through it.
func recompute(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (float64, int, error) {
	avg, count, err := repositories.NewRatingRepository(tx).Aggregate(ctx, bookID)
	if err != nil {
		return 0, 0, err
	}
	if err := repositories.NewBookRepository(tx).SetAggregate(ctx, bookID, avg, count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
