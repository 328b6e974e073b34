package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Speaker{},
		&Sponsor{},
		&Event{},
		&PricingCategory{},
		&SpeakerAssignment{},
		&SessionRecord{},
		&SponsorAssignment{},
		&Registration{},
		&Certificate{},
	)
}
