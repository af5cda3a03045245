package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

// AccessService records payments. A payment row is the only thing that
// grants a user the book's PDF.
type AccessService struct {
	db     *gorm.DB
	events *event.Dispatcher
	now    Clock
}

func NewAccessService(db *gorm.DB, events *event.Dispatcher, now Clock) *AccessService {
	return &AccessService{db: db, events: events, now: clockOrDefault(now)}
}

func (s *AccessService) HasAccess(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	return repositories.NewPaymentRepository(s.db).Exists(ctx, userID, bookID)
}

// Pay records that userID paid for bookID. Paying twice returns the first
// payment and writes nothing.
func (s *AccessService) Pay(ctx context.Context, userID, bookID uuid.UUID) (models.Payment, error) {
	var (
		payment models.Payment
		created bool
	)
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		ok, err := repositories.NewBookRepository(tx).Exists(ctx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return errBookNotFound
		}

		payments := repositories.NewPaymentRepository(tx)
		payment, err = payments.Find(ctx, userID, bookID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		payment = models.Payment{UserID: userID, BookID: bookID}
		payment.CreatedAt = s.now()
		created = true
		return payments.Create(ctx, &payment)
	})
	if err != nil {
		return models.Payment{}, err
	}

	if created {
		logger.WithCtx(ctx).Info("payment recorded", "user_id", userID.String(), "book_id", bookID.String())
		s.events.Fire(ctx, event.PaymentRecorded, PaymentRecorded{UserID: userID, BookID: bookID})
	}
	return payment, nil
}
