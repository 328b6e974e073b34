package repository

import (
	"context"
	"fmt"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Registration, error)
	CountByPricingCategory(ctx context.Context, categoryID uint) (int64, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) domainToDao(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:                reg.ID,
		EventID:           reg.EventID,
		UserID:            reg.UserID,
		PricingCategoryID: reg.PricingCategoryID,
		Amount:            reg.Amount,
		Currency:          reg.Currency,
		PaymentStatus:     reg.PaymentStatus,
		PaymentIntentID:   reg.PaymentIntentID,
		CreatedAt:         reg.CreatedAt,
		UpdatedAt:         reg.UpdatedAt,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:                reg.ID,
		EventID:           reg.EventID,
		UserID:            reg.UserID,
		PricingCategoryID: reg.PricingCategoryID,
		Amount:            reg.Amount,
		Currency:          reg.Currency,
		PaymentStatus:     reg.PaymentStatus,
		PaymentIntentID:   reg.PaymentIntentID,
		CreatedAt:         reg.CreatedAt,
		UpdatedAt:         reg.UpdatedAt,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(registration))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(registration), nil
}

func (r *RegistrationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Registration, error) {
	registrations, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	result := make([]domain.Registration, len(registrations))
	for i, reg := range registrations {
		result[i] = r.daoToDomain(reg)
	}

	return result, nil
}

func (r *RegistrationRepository) CountByPricingCategory(ctx context.Context, categoryID uint) (int64, error) {
	count, err := r.dao.CountByPricingCategory(ctx, categoryID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByPricingCategory -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdatePaymentStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdatePaymentStatus -> %w", err)
	}

	return nil
}
