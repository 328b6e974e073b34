package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrSlugExists    = errors.New("event slug already exists")
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	TenantID    uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	Location    string
	Venue       string

	StartDate *time.Time
	EndDate   *time.Time
	StartTime string
	EndTime   string

	RegistrationDeadline  *time.Time
	RegistrationOpensDate *time.Time
	EarlyBirdDeadline     *time.Time

	Price      float64
	Currency   string `gorm:"default:USD"`
	CMECredits float64
	BannerURL  string
	Tags       string

	Status             string `gorm:"not null;default:DRAFT"`
	IsPublished        bool   `gorm:"not null;default:false"`
	IsFeatured         bool   `gorm:"not null;default:false"`
	IsRegistrationOpen bool   `gorm:"not null;default:false"`

	PricingCategories []PricingCategory   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	EventSpeakers     []SpeakerAssignment `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	EventSessions     []SessionRecord     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	EventSponsors     []SponsorAssignment `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PricingCategory struct {
	ID                uint   `gorm:"primaryKey"`
	EventID           uint   `gorm:"index;not null"`
	Name              string `gorm:"not null"`
	Description       string
	Slots             int `gorm:"not null"`
	Price             float64
	EarlyBirdPrice    float64
	EarlyBirdDeadline *time.Time
	DisplayOrder      int `gorm:"not null;default:0"`
}

type SpeakerAssignment struct {
	ID           uint    `gorm:"primaryKey"`
	EventID      uint    `gorm:"index;not null"`
	SpeakerID    uint    `gorm:"not null"`
	Speaker      Speaker `gorm:"foreignKey:SpeakerID"`
	Topic        string  `gorm:"not null"`
	Description  string
	SessionDate  *time.Time
	SessionOrder int    `gorm:"not null;default:0"`
	Status       string `gorm:"not null;default:pending"`
	IsPublished  bool   `gorm:"not null;default:false"`
}

type SessionRecord struct {
	ID           uint `gorm:"primaryKey"`
	EventID      uint `gorm:"index;not null"`
	SpeakerID    *uint
	Speaker      *Speaker `gorm:"foreignKey:SpeakerID"`
	Title        string   `gorm:"not null"`
	Description  string
	SessionDate  *time.Time
	StartTime    string
	EndTime      string
	Hall         string
	SessionOrder int    `gorm:"not null;default:0"`
	Status       string `gorm:"not null;default:scheduled"`
	IsPublished  bool   `gorm:"not null;default:false"`
}

type SponsorAssignment struct {
	ID           uint    `gorm:"primaryKey"`
	EventID      uint    `gorm:"index;not null"`
	SponsorID    uint    `gorm:"not null"`
	Sponsor      Sponsor `gorm:"foreignKey:SponsorID"`
	Tier         string  `gorm:"not null"`
	DisplayOrder int     `gorm:"not null;default:0"`
	IsPublished  bool    `gorm:"not null;default:false"`
}

// EventAggregate is an event row plus its owned collections as read
// back from the database, dependents ordered for display.
type EventAggregate struct {
	Event             Event
	PricingCategories []PricingCategory
	EventSpeakers     []SpeakerAssignment
	EventSessions     []SessionRecord
	EventSponsors     []SponsorAssignment
	RegistrationCount int64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit("PricingCategories", "EventSpeakers", "EventSessions", "EventSponsors").Create(&event)
	if result.Error != nil {
		return Event{}, mapSlugError(result.Error)
	}

	return event, nil
}

func (d *EventDAO) GetByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) GetPublishedBySlug(ctx context.Context, slug string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) List(ctx context.Context, tenantID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) ListPublished(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("start_date ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).
		Omit("PricingCategories", "EventSpeakers", "EventSessions", "EventSponsors").
		Save(&event)
	if result.Error != nil {
		return Event{}, mapSlugError(result.Error)
	}

	return event, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// GetAggregateByID loads an event together with its four owned
// collections (ordered for display) and its registration count.
func (d *EventDAO) GetAggregateByID(ctx context.Context, id uint) (EventAggregate, error) {
	return d.getAggregate(d.db.WithContext(ctx), id)
}

// InsertAggregate writes a full event aggregate inside one
// transaction: the event row first, then its dependents keyed by the
// new event's id. Any failed insert rolls everything back. The
// returned aggregate is re-read through the same transaction so the
// caller sees the rows exactly as persisted.
func (d *EventDAO) InsertAggregate(
	ctx context.Context,
	event Event,
	categories []PricingCategory,
	speakers []SpeakerAssignment,
	sessions []SessionRecord,
	sponsors []SponsorAssignment,
) (EventAggregate, error) {
	var aggregate EventAggregate

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PricingCategories", "EventSpeakers", "EventSessions", "EventSponsors").
			Create(&event).Error; err != nil {
			return mapSlugError(err)
		}

		for i := range categories {
			categories[i].ID = 0
			categories[i].EventID = event.ID
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}

		for i := range speakers {
			speakers[i].ID = 0
			speakers[i].EventID = event.ID
			speakers[i].Speaker = Speaker{}
		}
		if len(speakers) > 0 {
			if err := tx.Omit("Speaker").Create(&speakers).Error; err != nil {
				return err
			}
		}

		for i := range sessions {
			sessions[i].ID = 0
			sessions[i].EventID = event.ID
			sessions[i].Speaker = nil
		}
		if len(sessions) > 0 {
			if err := tx.Omit("Speaker").Create(&sessions).Error; err != nil {
				return err
			}
		}

		for i := range sponsors {
			sponsors[i].ID = 0
			sponsors[i].EventID = event.ID
			sponsors[i].Sponsor = Sponsor{}
		}
		if len(sponsors) > 0 {
			if err := tx.Omit("Sponsor").Create(&sponsors).Error; err != nil {
				return err
			}
		}

		read, err := d.getAggregate(tx, event.ID)
		if err != nil {
			return err
		}
		aggregate = read

		return nil
	})
	if err != nil {
		return EventAggregate{}, err
	}

	return aggregate, nil
}

func (d *EventDAO) getAggregate(db *gorm.DB, id uint) (EventAggregate, error) {
	var event Event

	result := db.
		Preload("PricingCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("EventSpeakers", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_order ASC")
		}).
		Preload("EventSpeakers.Speaker").
		Preload("EventSessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_order ASC")
		}).
		Preload("EventSessions.Speaker").
		Preload("EventSponsors", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("EventSponsors.Sponsor").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventAggregate{}, ErrEventNotFound
		}

		return EventAggregate{}, result.Error
	}

	var count int64
	if err := db.Model(&Registration{}).Where("event_id = ?", id).Count(&count).Error; err != nil {
		return EventAggregate{}, err
	}

	aggregate := EventAggregate{
		Event:             event,
		PricingCategories: event.PricingCategories,
		EventSpeakers:     event.EventSpeakers,
		EventSessions:     event.EventSessions,
		EventSponsors:     event.EventSponsors,
		RegistrationCount: count,
	}
	aggregate.Event.PricingCategories = nil
	aggregate.Event.EventSpeakers = nil
	aggregate.Event.EventSessions = nil
	aggregate.Event.EventSponsors = nil

	return aggregate, nil
}

func mapSlugError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, "slug") {
		return ErrSlugExists
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
