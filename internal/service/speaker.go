package service

import (
	"context"
	"fmt"

	"github.com/confmed/icms-api/internal/domain"
)

type SpeakerRepository interface {
	Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	FindByID(ctx context.Context, id uint) (domain.Speaker, error)
	FindAll(ctx context.Context) ([]domain.Speaker, error)
}

type SpeakerService struct {
	repo SpeakerRepository
}

func NewSpeakerService(repo SpeakerRepository) *SpeakerService {
	return &SpeakerService{
		repo: repo,
	}
}

func (s *SpeakerService) CreateSpeaker(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	created, err := s.repo.Create(ctx, speaker)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SpeakerService) GetSpeaker(ctx context.Context, id uint) (domain.Speaker, error) {
	speaker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return speaker, nil
}

func (s *SpeakerService) ListSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	speakers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return speakers, nil
}

type SponsorRepository interface {
	Create(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error)
	FindByID(ctx context.Context, id uint) (domain.Sponsor, error)
	FindAll(ctx context.Context) ([]domain.Sponsor, error)
}

type SponsorService struct {
	repo SponsorRepository
}

func NewSponsorService(repo SponsorRepository) *SponsorService {
	return &SponsorService{
		repo: repo,
	}
}

func (s *SponsorService) CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error) {
	created, err := s.repo.Create(ctx, sponsor)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SponsorService) GetSponsor(ctx context.Context, id uint) (domain.Sponsor, error) {
	sponsor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sponsor, nil
}

func (s *SponsorService) ListSponsors(ctx context.Context) ([]domain.Sponsor, error) {
	sponsors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sponsors, nil
}
