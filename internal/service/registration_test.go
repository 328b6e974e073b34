package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository"
)

type fakeRegistrationRepo struct {
	nextID        uint
	registrations map[uint]domain.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1, registrations: make(map[uint]domain.Registration)}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	for _, existing := range f.registrations {
		if existing.EventID == registration.EventID && existing.UserID == registration.UserID {
			return domain.Registration{}, repository.ErrAlreadyRegistered
		}
	}
	registration.ID = f.nextID
	f.nextID++
	f.registrations[registration.ID] = registration

	return registration, nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}

	return registration, nil
}

func (f *fakeRegistrationRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, registration := range f.registrations {
		if registration.UserID == userID {
			out = append(out, registration)
		}
	}

	return out, nil
}

func (f *fakeRegistrationRepo) CountByPricingCategory(_ context.Context, categoryID uint) (int64, error) {
	var n int64
	for _, registration := range f.registrations {
		if registration.PricingCategoryID == categoryID {
			n++
		}
	}

	return n, nil
}

func (f *fakeRegistrationRepo) UpdatePaymentStatus(_ context.Context, id uint, status string) error {
	registration, ok := f.registrations[id]
	if !ok {
		return repository.ErrRegistrationNotFound
	}
	registration.PaymentStatus = status
	f.registrations[id] = registration

	return nil
}

type fakeRegistrationEventRepo struct {
	events     map[uint]domain.Event
	categories map[uint]domain.PricingCategory
}

func (f *fakeRegistrationEventRepo) GetByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeRegistrationEventRepo) GetPricingCategoryByID(_ context.Context, id uint) (domain.PricingCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return domain.PricingCategory{}, repository.ErrAssignmentNotFound
	}

	return category, nil
}

type fakePayments struct {
	lastAmount   float64
	lastCurrency string
	err          error
}

func (f *fakePayments) CreatePaymentIntent(amount float64, currency, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastAmount = amount
	f.lastCurrency = currency

	return "pi_test_123", nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(_ context.Context, to, _, _, _ string) error {
	f.sent = append(f.sent, to)

	return nil
}

func registrationFixture() (*RegistrationService, *fakeRegistrationRepo, *fakePayments, *fakeMailer) {
	events := &fakeRegistrationEventRepo{
		events: map[uint]domain.Event{
			1: {
				ID:                   1,
				Title:                "Amsterdam Cardiology Summit",
				Currency:             "EUR",
				RegistrationDeadline: day(2026, time.July, 1),
				IsPublished:          true,
				IsRegistrationOpen:   true,
			},
		},
		categories: map[uint]domain.PricingCategory{
			10: {ID: 10, EventID: 1, Name: "Resident", Slots: 2, Price: 250, EarlyBirdPrice: 180, EarlyBirdDeadline: day(2026, time.June, 15)},
			11: {ID: 11, EventID: 2, Name: "Other event category", Price: 100},
			12: {ID: 12, EventID: 1, Name: "Student", Price: 0},
		},
	}
	repo := newFakeRegistrationRepo()
	payments := &fakePayments{}
	mailer := &fakeMailer{}
	svc := NewRegistrationService(repo, events, payments, mailer)
	svc.now = func() time.Time {
		return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	return svc, repo, payments, mailer
}

func attendee(id uint) domain.User {
	return domain.User{ID: id, Email: "attendee@example.com", Name: "A. Attendee", Role: domain.RoleAttendee}
}

func TestRegister_EarlyBirdPrice(t *testing.T) {
	svc, _, payments, mailer := registrationFixture()

	registration, err := svc.Register(context.Background(), attendee(5), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 180.0, registration.Amount)
	assert.Equal(t, "EUR", registration.Currency)
	assert.Equal(t, domain.PaymentStatusPending, registration.PaymentStatus)
	assert.Equal(t, "pi_test_123", registration.PaymentIntentID)
	assert.Equal(t, 180.0, payments.lastAmount)
	assert.Equal(t, []string{"attendee@example.com"}, mailer.sent)
}

func TestRegister_FullPriceAfterEarlyBird(t *testing.T) {
	svc, _, payments, _ := registrationFixture()
	svc.now = func() time.Time {
		return time.Date(2026, time.June, 20, 12, 0, 0, 0, time.UTC)
	}

	registration, err := svc.Register(context.Background(), attendee(5), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 250.0, registration.Amount)
	assert.Equal(t, 250.0, payments.lastAmount)
}

func TestRegister_FreeCategoryIsPaidImmediately(t *testing.T) {
	svc, _, payments, _ := registrationFixture()

	registration, err := svc.Register(context.Background(), attendee(5), 1, 12)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPaid, registration.PaymentStatus)
	assert.Empty(t, registration.PaymentIntentID)
	assert.Zero(t, payments.lastAmount)
}

func TestRegister_Rejections(t *testing.T) {
	t.Run("registration closed", func(t *testing.T) {
		svc, _, _, _ := registrationFixture()
		events := svc.eventRepo.(*fakeRegistrationEventRepo)
		event := events.events[1]
		event.IsRegistrationOpen = false
		events.events[1] = event

		_, err := svc.Register(context.Background(), attendee(5), 1, 10)
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("deadline passed", func(t *testing.T) {
		svc, _, _, _ := registrationFixture()
		svc.now = func() time.Time {
			return time.Date(2026, time.July, 2, 0, 0, 0, 0, time.UTC)
		}

		_, err := svc.Register(context.Background(), attendee(5), 1, 10)
		assert.ErrorIs(t, err, ErrRegistrationDeadline)
	})

	t.Run("category of another event", func(t *testing.T) {
		svc, _, _, _ := registrationFixture()

		_, err := svc.Register(context.Background(), attendee(5), 1, 11)
		assert.ErrorIs(t, err, ErrCategoryWrongEvent)
	})

	t.Run("category full", func(t *testing.T) {
		svc, _, _, _ := registrationFixture()

		_, err := svc.Register(context.Background(), attendee(5), 1, 10)
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), attendee(6), 1, 10)
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), attendee(7), 1, 10)
		assert.ErrorIs(t, err, ErrCategoryFull)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		svc, _, _, _ := registrationFixture()

		_, err := svc.Register(context.Background(), attendee(5), 1, 10)
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), attendee(5), 1, 10)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("payment provider failure", func(t *testing.T) {
		svc, repo, payments, _ := registrationFixture()
		payments.err = errors.New("stripe: card network unavailable")

		_, err := svc.Register(context.Background(), attendee(5), 1, 10)
		require.Error(t, err)
		assert.Empty(t, repo.registrations)
	})
}

func TestConfirmPayment(t *testing.T) {
	svc, repo, _, _ := registrationFixture()

	created, err := svc.Register(context.Background(), attendee(5), 1, 10)
	require.NoError(t, err)

	t.Run("another attendee cannot confirm", func(t *testing.T) {
		_, err := svc.ConfirmPayment(context.Background(), attendee(6), created.ID)
		assert.ErrorIs(t, err, ErrRegistrationNotOwned)
	})

	t.Run("owner confirms", func(t *testing.T) {
		confirmed, err := svc.ConfirmPayment(context.Background(), attendee(5), created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, confirmed.PaymentStatus)
		assert.Equal(t, domain.PaymentStatusPaid, repo.registrations[created.ID].PaymentStatus)
	})

	t.Run("organizer may confirm on behalf", func(t *testing.T) {
		organizer := domain.User{ID: 99, Role: domain.RoleOrganizer}
		_, err := svc.ConfirmPayment(context.Background(), organizer, created.ID)
		assert.NoError(t, err)
	})
}
