package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/email"
	"github.com/confmed/icms-api/internal/repository"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrRegistrationClosed   = errors.New("registration is not open for this event")
	ErrCategoryFull         = errors.New("pricing category has no free slots")
	ErrCategoryNotFound     = repository.ErrAssignmentNotFound
	ErrCategoryWrongEvent   = errors.New("pricing category does not belong to this event")
	ErrRegistrationDeadline = errors.New("registration deadline has passed")
	ErrRegistrationNotOwned = errors.New("registration belongs to another user")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Registration, error)
	CountByPricingCategory(ctx context.Context, categoryID uint) (int64, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
}

type RegistrationEventRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	GetPricingCategoryByID(ctx context.Context, id uint) (domain.PricingCategory, error)
}

type PaymentProvider interface {
	CreatePaymentIntent(amount float64, currency, description string) (string, error)
}

type RegistrationService struct {
	repo      RegistrationRepository
	eventRepo RegistrationEventRepository
	payments  PaymentProvider
	mailer    email.Mailer

	now func() time.Time
}

func NewRegistrationService(repo RegistrationRepository, eventRepo RegistrationEventRepository, payments PaymentProvider, mailer email.Mailer) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
		payments:  payments,
		mailer:    mailer,
		now:       time.Now,
	}
}

// Register creates a pending registration for a published event with
// open registration, reserving a slot in the chosen pricing category
// and opening a Stripe payment intent for the category price.
func (s *RegistrationService) Register(ctx context.Context, user domain.User, eventID, categoryID uint) (domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.eventRepo.GetByID -> %w", err)
	}

	if !event.IsPublished || !event.IsRegistrationOpen {
		return domain.Registration{}, ErrRegistrationClosed
	}
	if event.RegistrationDeadline != nil && s.now().After(*event.RegistrationDeadline) {
		return domain.Registration{}, ErrRegistrationDeadline
	}

	category, err := s.eventRepo.GetPricingCategoryByID(ctx, categoryID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.eventRepo.GetPricingCategoryByID -> %w", err)
	}
	if category.EventID != eventID {
		return domain.Registration{}, ErrCategoryWrongEvent
	}

	taken, err := s.repo.CountByPricingCategory(ctx, categoryID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.CountByPricingCategory -> %w", err)
	}
	if category.Slots > 0 && taken >= int64(category.Slots) {
		return domain.Registration{}, ErrCategoryFull
	}

	amount := category.Price
	if category.EarlyBirdDeadline != nil && category.EarlyBirdPrice > 0 &&
		s.now().Before(*category.EarlyBirdDeadline) {
		amount = category.EarlyBirdPrice
	}

	currency := event.Currency
	if currency == "" {
		currency = "USD"
	}

	intentID := ""
	if amount > 0 && s.payments != nil {
		intentID, err = s.payments.CreatePaymentIntent(amount, currency, event.Title)
		if err != nil {
			return domain.Registration{}, fmt.Errorf("s.payments.CreatePaymentIntent -> %w", err)
		}
	}

	registration := domain.Registration{
		EventID:           eventID,
		UserID:            user.ID,
		PricingCategoryID: categoryID,
		Amount:            amount,
		Currency:          currency,
		PaymentStatus:     domain.PaymentStatusPending,
		PaymentIntentID:   intentID,
	}
	if amount == 0 {
		registration.PaymentStatus = domain.PaymentStatusPaid
	}

	created, err := s.repo.Create(ctx, registration)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.mailer != nil {
		subject := fmt.Sprintf("Registration received: %s", event.Title)
		body := fmt.Sprintf("Dear %s,\n\nyour registration for %s has been received.", user.Name, event.Title)
		if err := s.mailer.Send(ctx, user.Email, subject, "", body); err != nil {
			zap.L().Warn("failed to send registration confirmation",
				zap.Uint("registration_id", created.ID), zap.Error(err))
		}
	}

	return created, nil
}

// ConfirmPayment marks a registration as paid. Payment verification
// against Stripe's webhook is an operational concern outside this
// service; the endpoint is restricted to the registration's owner.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, user domain.User, registrationID uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if registration.UserID != user.ID && !user.CanManageEvents() {
		return domain.Registration{}, ErrRegistrationNotOwned
	}

	if err := s.repo.UpdatePaymentStatus(ctx, registrationID, domain.PaymentStatusPaid); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdatePaymentStatus -> %w", err)
	}
	registration.PaymentStatus = domain.PaymentStatusPaid

	return registration, nil
}

func (s *RegistrationService) ListOwn(ctx context.Context, userID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return registrations, nil
}
