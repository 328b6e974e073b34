package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository"
)

var (
	ErrCertificateNotFound = repository.ErrCertificateNotFound
	ErrCertificateExists   = repository.ErrCertificateExists
	ErrRegistrationUnpaid  = errors.New("registration has not been paid")
	ErrEventNotCompleted   = errors.New("event has not been completed")
)

type CertificateRepository interface {
	Create(ctx context.Context, certificate domain.Certificate) (domain.Certificate, error)
	FindByVerificationCode(ctx context.Context, code string) (domain.Certificate, error)
	FindByRegistrationID(ctx context.Context, registrationID uint) (domain.Certificate, error)
}

type CertificateRegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
}

type CertificateEventRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Event, error)
}

type CertificateService struct {
	repo      CertificateRepository
	regRepo   CertificateRegistrationRepository
	eventRepo CertificateEventRepository
	userRepo  UserRepository

	now func() time.Time
}

func NewCertificateService(repo CertificateRepository, regRepo CertificateRegistrationRepository, eventRepo CertificateEventRepository, userRepo UserRepository) *CertificateService {
	return &CertificateService{
		repo:      repo,
		regRepo:   regRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// Issue creates a CME certificate for a paid registration of a
// completed event. The verification code is random and unique; the
// credits are frozen from the event at issue time.
func (s *CertificateService) Issue(ctx context.Context, registrationID uint) (domain.Certificate, error) {
	registration, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.regRepo.FindByID -> %w", err)
	}

	if registration.PaymentStatus != domain.PaymentStatusPaid {
		return domain.Certificate{}, ErrRegistrationUnpaid
	}

	event, err := s.eventRepo.GetByID(ctx, registration.EventID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.eventRepo.GetByID -> %w", err)
	}

	if event.Status != domain.EventStatusCompleted {
		return domain.Certificate{}, ErrEventNotCompleted
	}

	attendee, err := s.userRepo.FindByID(ctx, registration.UserID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	certificate := domain.Certificate{
		EventID:          event.ID,
		RegistrationID:   registration.ID,
		AttendeeName:     attendee.Name,
		EventTitle:       event.Title,
		CMECredits:       event.CMECredits,
		VerificationCode: uuid.NewString(),
		IssuedAt:         s.now(),
	}

	created, err := s.repo.Create(ctx, certificate)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Verify resolves a public verification code to the certificate it
// identifies.
func (s *CertificateService) Verify(ctx context.Context, code string) (domain.Certificate, error) {
	certificate, err := s.repo.FindByVerificationCode(ctx, code)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.repo.FindByVerificationCode -> %w", err)
	}

	return certificate, nil
}
