package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("certificate already issued for registration")
)

type Certificate struct {
	ID               uint   `gorm:"primaryKey"`
	EventID          uint   `gorm:"index;not null"`
	RegistrationID   uint   `gorm:"uniqueIndex;not null"`
	AttendeeName     string `gorm:"not null"`
	EventTitle       string `gorm:"not null"`
	CMECredits       float64
	VerificationCode string `gorm:"uniqueIndex;not null"`
	IssuedAt         time.Time
}

type CertificateDAO struct {
	db *gorm.DB
}

func NewCertificateDAO(db *gorm.DB) *CertificateDAO {
	return &CertificateDAO{
		db: db,
	}
}

func (d *CertificateDAO) Insert(ctx context.Context, certificate Certificate) (Certificate, error) {
	result := d.db.WithContext(ctx).Create(&certificate)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Certificate{}, ErrCertificateExists
		}

		return Certificate{}, result.Error
	}

	return certificate, nil
}

func (d *CertificateDAO) FindByVerificationCode(ctx context.Context, code string) (Certificate, error) {
	var certificate Certificate

	result := d.db.WithContext(ctx).Where("verification_code = ?", code).First(&certificate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Certificate{}, ErrCertificateNotFound
		}

		return Certificate{}, result.Error
	}

	return certificate, nil
}

func (d *CertificateDAO) FindByRegistrationID(ctx context.Context, registrationID uint) (Certificate, error) {
	var certificate Certificate

	result := d.db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&certificate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Certificate{}, ErrCertificateNotFound
		}

		return Certificate{}, result.Error
	}

	return certificate, nil
}
