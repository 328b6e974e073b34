package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSpeakerNotFound = errors.New("speaker not found")
	ErrSponsorNotFound = errors.New("sponsor not found")
)

type Speaker struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Title        string
	Specialty    string
	Organization string
	Bio          string
	PhotoURL     string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Sponsor struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Description  string
	LogoURL      string
	Website      string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SpeakerDAO struct {
	db *gorm.DB
}

func NewSpeakerDAO(db *gorm.DB) *SpeakerDAO {
	return &SpeakerDAO{
		db: db,
	}
}

func (d *SpeakerDAO) Insert(ctx context.Context, speaker Speaker) (Speaker, error) {
	result := d.db.WithContext(ctx).Create(&speaker)
	if result.Error != nil {
		return Speaker{}, result.Error
	}

	return speaker, nil
}

func (d *SpeakerDAO) FindByID(ctx context.Context, id uint) (Speaker, error) {
	var speaker Speaker

	result := d.db.WithContext(ctx).First(&speaker, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Speaker{}, ErrSpeakerNotFound
		}

		return Speaker{}, result.Error
	}

	return speaker, nil
}

func (d *SpeakerDAO) FindAll(ctx context.Context) ([]Speaker, error) {
	var speakers []Speaker

	result := d.db.WithContext(ctx).Order("name ASC").Find(&speakers)
	if result.Error != nil {
		return nil, result.Error
	}

	return speakers, nil
}

type SponsorDAO struct {
	db *gorm.DB
}

func NewSponsorDAO(db *gorm.DB) *SponsorDAO {
	return &SponsorDAO{
		db: db,
	}
}

func (d *SponsorDAO) Insert(ctx context.Context, sponsor Sponsor) (Sponsor, error) {
	result := d.db.WithContext(ctx).Create(&sponsor)
	if result.Error != nil {
		return Sponsor{}, result.Error
	}

	return sponsor, nil
}

func (d *SponsorDAO) FindByID(ctx context.Context, id uint) (Sponsor, error) {
	var sponsor Sponsor

	result := d.db.WithContext(ctx).First(&sponsor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sponsor{}, ErrSponsorNotFound
		}

		return Sponsor{}, result.Error
	}

	return sponsor, nil
}

func (d *SponsorDAO) FindAll(ctx context.Context) ([]Sponsor, error) {
	var sponsors []Sponsor

	result := d.db.WithContext(ctx).Order("name ASC").Find(&sponsors)
	if result.Error != nil {
		return nil, result.Error
	}

	return sponsors, nil
}
