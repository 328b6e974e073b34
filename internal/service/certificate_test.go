package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository"
)

type fakeCertificateRepo struct {
	nextID       uint
	certificates map[uint]domain.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{nextID: 1, certificates: make(map[uint]domain.Certificate)}
}

func (f *fakeCertificateRepo) Create(_ context.Context, certificate domain.Certificate) (domain.Certificate, error) {
	for _, existing := range f.certificates {
		if existing.RegistrationID == certificate.RegistrationID {
			return domain.Certificate{}, repository.ErrCertificateExists
		}
	}
	certificate.ID = f.nextID
	f.nextID++
	f.certificates[certificate.ID] = certificate

	return certificate, nil
}

func (f *fakeCertificateRepo) FindByVerificationCode(_ context.Context, code string) (domain.Certificate, error) {
	for _, certificate := range f.certificates {
		if certificate.VerificationCode == code {
			return certificate, nil
		}
	}

	return domain.Certificate{}, repository.ErrCertificateNotFound
}

func (f *fakeCertificateRepo) FindByRegistrationID(_ context.Context, registrationID uint) (domain.Certificate, error) {
	for _, certificate := range f.certificates {
		if certificate.RegistrationID == registrationID {
			return certificate, nil
		}
	}

	return domain.Certificate{}, repository.ErrCertificateNotFound
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func certificateFixture() (*CertificateService, *fakeCertificateRepo, *fakeRegistrationRepo) {
	certRepo := newFakeCertificateRepo()
	regRepo := newFakeRegistrationRepo()
	regRepo.registrations[1] = domain.Registration{ID: 1, EventID: 1, UserID: 5, PaymentStatus: domain.PaymentStatusPaid}
	regRepo.registrations[2] = domain.Registration{ID: 2, EventID: 1, UserID: 6, PaymentStatus: domain.PaymentStatusPending}
	regRepo.registrations[3] = domain.Registration{ID: 3, EventID: 2, UserID: 5, PaymentStatus: domain.PaymentStatusPaid}
	regRepo.nextID = 4

	events := &fakeRegistrationEventRepo{
		events: map[uint]domain.Event{
			1: {ID: 1, Title: "Amsterdam Cardiology Summit", CMECredits: 12, Status: domain.EventStatusCompleted},
			2: {ID: 2, Title: "Upcoming Echo Workshop", CMECredits: 6, Status: domain.EventStatusPublished},
		},
	}
	users := &fakeUserRepo{users: map[uint]domain.User{
		5: {ID: 5, Name: "Dr. Vega", Email: "vega@example.com"},
		6: {ID: 6, Name: "Dr. Osei", Email: "osei@example.com"},
	}}

	svc := NewCertificateService(certRepo, regRepo, events, users)
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	}

	return svc, certRepo, regRepo
}

func TestIssueCertificate(t *testing.T) {
	svc, _, _ := certificateFixture()

	certificate, err := svc.Issue(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), certificate.EventID)
	assert.Equal(t, uint(1), certificate.RegistrationID)
	assert.Equal(t, "Dr. Vega", certificate.AttendeeName)
	assert.Equal(t, "Amsterdam Cardiology Summit", certificate.EventTitle)
	assert.Equal(t, 12.0, certificate.CMECredits)
	assert.NotEmpty(t, certificate.VerificationCode)
	assert.Equal(t, time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC), certificate.IssuedAt)
}

func TestIssueCertificate_Rejections(t *testing.T) {
	svc, _, _ := certificateFixture()

	t.Run("unpaid registration", func(t *testing.T) {
		_, err := svc.Issue(context.Background(), 2)
		assert.ErrorIs(t, err, ErrRegistrationUnpaid)
	})

	t.Run("event not completed", func(t *testing.T) {
		_, err := svc.Issue(context.Background(), 3)
		assert.ErrorIs(t, err, ErrEventNotCompleted)
	})

	t.Run("unknown registration", func(t *testing.T) {
		_, err := svc.Issue(context.Background(), 999)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("already issued", func(t *testing.T) {
		_, err := svc.Issue(context.Background(), 1)
		require.NoError(t, err)
		_, err = svc.Issue(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCertificateExists)
	})
}

func TestVerifyCertificate(t *testing.T) {
	svc, _, _ := certificateFixture()

	issued, err := svc.Issue(context.Background(), 1)
	require.NoError(t, err)

	found, err := svc.Verify(context.Background(), issued.VerificationCode)
	require.NoError(t, err)
	assert.Equal(t, issued, found)

	_, err = svc.Verify(context.Background(), "no-such-code")
	assert.ErrorIs(t, err, ErrCertificateNotFound)
}
