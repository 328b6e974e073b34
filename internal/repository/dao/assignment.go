package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSessionNotFound    = errors.New("session not found")
)

func (d *EventDAO) InsertSpeakerAssignment(ctx context.Context, assignment SpeakerAssignment) (SpeakerAssignment, error) {
	result := d.db.WithContext(ctx).Omit("Speaker").Create(&assignment)
	if result.Error != nil {
		return SpeakerAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) GetSpeakerAssignmentByID(ctx context.Context, id uint) (SpeakerAssignment, error) {
	var assignment SpeakerAssignment

	result := d.db.WithContext(ctx).First(&assignment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpeakerAssignment{}, ErrAssignmentNotFound
		}

		return SpeakerAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) UpdateSpeakerAssignment(ctx context.Context, assignment SpeakerAssignment) (SpeakerAssignment, error) {
	result := d.db.WithContext(ctx).Omit("Speaker").Save(&assignment)
	if result.Error != nil {
		return SpeakerAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) DeleteSpeakerAssignment(ctx context.Context, eventID, id uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&SpeakerAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

func (d *EventDAO) InsertSession(ctx context.Context, session SessionRecord) (SessionRecord, error) {
	result := d.db.WithContext(ctx).Omit("Speaker").Create(&session)
	if result.Error != nil {
		return SessionRecord{}, result.Error
	}

	return session, nil
}

func (d *EventDAO) GetSessionByID(ctx context.Context, id uint) (SessionRecord, error) {
	var session SessionRecord

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SessionRecord{}, ErrSessionNotFound
		}

		return SessionRecord{}, result.Error
	}

	return session, nil
}

func (d *EventDAO) UpdateSession(ctx context.Context, session SessionRecord) (SessionRecord, error) {
	result := d.db.WithContext(ctx).Omit("Speaker").Save(&session)
	if result.Error != nil {
		return SessionRecord{}, result.Error
	}

	return session, nil
}

func (d *EventDAO) DeleteSession(ctx context.Context, eventID, id uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&SessionRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (d *EventDAO) ListSessionsByEventID(ctx context.Context, eventID uint) ([]SessionRecord, error) {
	var sessions []SessionRecord

	result := d.db.WithContext(ctx).
		Preload("Speaker").
		Where("event_id = ?", eventID).
		Order("session_order ASC").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *EventDAO) InsertSponsorAssignment(ctx context.Context, assignment SponsorAssignment) (SponsorAssignment, error) {
	result := d.db.WithContext(ctx).Omit("Sponsor").Create(&assignment)
	if result.Error != nil {
		return SponsorAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) DeleteSponsorAssignment(ctx context.Context, eventID, id uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&SponsorAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

func (d *EventDAO) InsertPricingCategory(ctx context.Context, category PricingCategory) (PricingCategory, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return PricingCategory{}, result.Error
	}

	return category, nil
}

func (d *EventDAO) GetPricingCategoryByID(ctx context.Context, id uint) (PricingCategory, error) {
	var category PricingCategory

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PricingCategory{}, ErrAssignmentNotFound
		}

		return PricingCategory{}, result.Error
	}

	return category, nil
}
