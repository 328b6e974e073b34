package repository

import (
	"context"
	"fmt"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository/dao"
)

var (
	ErrCertificateNotFound = dao.ErrCertificateNotFound
	ErrCertificateExists   = dao.ErrCertificateExists
)

type CertificateDAO interface {
	Insert(ctx context.Context, certificate dao.Certificate) (dao.Certificate, error)
	FindByVerificationCode(ctx context.Context, code string) (dao.Certificate, error)
	FindByRegistrationID(ctx context.Context, registrationID uint) (dao.Certificate, error)
}

type CertificateRepository struct {
	dao CertificateDAO
}

func NewCertificateRepository(dao CertificateDAO) *CertificateRepository {
	return &CertificateRepository{
		dao: dao,
	}
}

func (r *CertificateRepository) domainToDao(c domain.Certificate) dao.Certificate {
	return dao.Certificate{
		ID:               c.ID,
		EventID:          c.EventID,
		RegistrationID:   c.RegistrationID,
		AttendeeName:     c.AttendeeName,
		EventTitle:       c.EventTitle,
		CMECredits:       c.CMECredits,
		VerificationCode: c.VerificationCode,
		IssuedAt:         c.IssuedAt,
	}
}

func (r *CertificateRepository) daoToDomain(c dao.Certificate) domain.Certificate {
	return domain.Certificate{
		ID:               c.ID,
		EventID:          c.EventID,
		RegistrationID:   c.RegistrationID,
		AttendeeName:     c.AttendeeName,
		EventTitle:       c.EventTitle,
		CMECredits:       c.CMECredits,
		VerificationCode: c.VerificationCode,
		IssuedAt:         c.IssuedAt,
	}
}

func (r *CertificateRepository) Create(ctx context.Context, certificate domain.Certificate) (domain.Certificate, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(certificate))
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CertificateRepository) FindByVerificationCode(ctx context.Context, code string) (domain.Certificate, error) {
	certificate, err := r.dao.FindByVerificationCode(ctx, code)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.FindByVerificationCode -> %w", err)
	}

	return r.daoToDomain(certificate), nil
}

func (r *CertificateRepository) FindByRegistrationID(ctx context.Context, registrationID uint) (domain.Certificate, error) {
	certificate, err := r.dao.FindByRegistrationID(ctx, registrationID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.FindByRegistrationID -> %w", err)
	}

	return r.daoToDomain(certificate), nil
}
