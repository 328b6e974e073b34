package repository

import (
	"context"
	"fmt"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository/dao"
)

var (
	ErrSpeakerNotFound = dao.ErrSpeakerNotFound
	ErrSponsorNotFound = dao.ErrSponsorNotFound
)

func speakerDomainToDao(s domain.Speaker) dao.Speaker {
	return dao.Speaker{
		ID:           s.ID,
		Name:         s.Name,
		Title:        s.Title,
		Specialty:    s.Specialty,
		Organization: s.Organization,
		Bio:          s.Bio,
		PhotoURL:     s.PhotoURL,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func speakerDaoToDomain(s dao.Speaker) domain.Speaker {
	return domain.Speaker{
		ID:           s.ID,
		Name:         s.Name,
		Title:        s.Title,
		Specialty:    s.Specialty,
		Organization: s.Organization,
		Bio:          s.Bio,
		PhotoURL:     s.PhotoURL,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func sponsorDomainToDao(s domain.Sponsor) dao.Sponsor {
	return dao.Sponsor{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		LogoURL:      s.LogoURL,
		Website:      s.Website,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func sponsorDaoToDomain(s dao.Sponsor) domain.Sponsor {
	return domain.Sponsor{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		LogoURL:      s.LogoURL,
		Website:      s.Website,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

type SpeakerDAO interface {
	Insert(ctx context.Context, speaker dao.Speaker) (dao.Speaker, error)
	FindByID(ctx context.Context, id uint) (dao.Speaker, error)
	FindAll(ctx context.Context) ([]dao.Speaker, error)
}

type SpeakerRepository struct {
	dao SpeakerDAO
}

func NewSpeakerRepository(dao SpeakerDAO) *SpeakerRepository {
	return &SpeakerRepository{
		dao: dao,
	}
}

func (r *SpeakerRepository) Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	created, err := r.dao.Insert(ctx, speakerDomainToDao(speaker))
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return speakerDaoToDomain(created), nil
}

func (r *SpeakerRepository) FindByID(ctx context.Context, id uint) (domain.Speaker, error) {
	speaker, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return speakerDaoToDomain(speaker), nil
}

func (r *SpeakerRepository) FindAll(ctx context.Context) ([]domain.Speaker, error) {
	speakers, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Speaker, len(speakers))
	for i, s := range speakers {
		result[i] = speakerDaoToDomain(s)
	}

	return result, nil
}

type SponsorDAO interface {
	Insert(ctx context.Context, sponsor dao.Sponsor) (dao.Sponsor, error)
	FindByID(ctx context.Context, id uint) (dao.Sponsor, error)
	FindAll(ctx context.Context) ([]dao.Sponsor, error)
}

type SponsorRepository struct {
	dao SponsorDAO
}

func NewSponsorRepository(dao SponsorDAO) *SponsorRepository {
	return &SponsorRepository{
		dao: dao,
	}
}

func (r *SponsorRepository) Create(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error) {
	created, err := r.dao.Insert(ctx, sponsorDomainToDao(sponsor))
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return sponsorDaoToDomain(created), nil
}

func (r *SponsorRepository) FindByID(ctx context.Context, id uint) (domain.Sponsor, error) {
	sponsor, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return sponsorDaoToDomain(sponsor), nil
}

func (r *SponsorRepository) FindAll(ctx context.Context) ([]domain.Sponsor, error) {
	sponsors, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Sponsor, len(sponsors))
	for i, s := range sponsors {
		result[i] = sponsorDaoToDomain(s)
	}

	return result, nil
}
