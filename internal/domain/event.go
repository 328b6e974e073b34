package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

const (
	SpeakerStatusPending   = "pending"
	SpeakerStatusConfirmed = "confirmed"
	SpeakerStatusDeclined  = "declined"

	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Event is a medical conference. StartDate/EndDate are calendar dates;
// time-of-day travels separately in StartTime/EndTime as opaque
// strings. The three deadline fields are anchored relative to
// StartDate, which is what makes duplication's date shifting possible.
type Event struct {
	ID          uint   `json:"id"`
	TenantID    uint   `json:"tenant_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Venue       string `json:"venue"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`

	RegistrationDeadline  *time.Time `json:"registration_deadline"`
	RegistrationOpensDate *time.Time `json:"registration_opens_date"`
	EarlyBirdDeadline     *time.Time `json:"early_bird_deadline"`

	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	CMECredits float64 `json:"cme_credits"`
	BannerURL  string  `json:"banner_url"`
	Tags       string  `json:"tags"`

	Status             EventStatus `json:"status"`
	IsPublished        bool        `json:"is_published"`
	IsFeatured         bool        `json:"is_featured"`
	IsRegistrationOpen bool        `json:"is_registration_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PricingCategory struct {
	ID                uint       `json:"id"`
	EventID           uint       `json:"event_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Slots             int        `json:"slots"`
	Price             float64    `json:"price"`
	EarlyBirdPrice    float64    `json:"early_bird_price"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline"`
	DisplayOrder      int        `json:"display_order"`
}

type SpeakerAssignment struct {
	ID           uint       `json:"id"`
	EventID      uint       `json:"event_id"`
	SpeakerID    uint       `json:"speaker_id"`
	Speaker      *Speaker   `json:"speaker,omitempty"`
	Topic        string     `json:"topic"`
	Description  string     `json:"description"`
	SessionDate  *time.Time `json:"session_date"`
	SessionOrder int        `json:"session_order"`
	Status       string     `json:"status"`
	IsPublished  bool       `json:"is_published"`
}

type SessionRecord struct {
	ID           uint       `json:"id"`
	EventID      uint       `json:"event_id"`
	SpeakerID    *uint      `json:"speaker_id"`
	Speaker      *Speaker   `json:"speaker,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SessionDate  *time.Time `json:"session_date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Hall         string     `json:"hall"`
	SessionOrder int        `json:"session_order"`
	Status       string     `json:"status"`
	IsPublished  bool       `json:"is_published"`
}

type SponsorAssignment struct {
	ID           uint     `json:"id"`
	EventID      uint     `json:"event_id"`
	SponsorID    uint     `json:"sponsor_id"`
	Sponsor      *Sponsor `json:"sponsor,omitempty"`
	Tier         string   `json:"tier"`
	DisplayOrder int      `json:"display_order"`
	IsPublished  bool     `json:"is_published"`
}

// EventAggregate is an event together with its exclusively owned
// collections, the unit the duplicate operation reads and writes.
type EventAggregate struct {
	Event             Event               `json:"event"`
	PricingCategories []PricingCategory   `json:"pricing_categories"`
	EventSpeakers     []SpeakerAssignment `json:"event_speakers"`
	EventSessions     []SessionRecord     `json:"event_sessions"`
	EventSponsors     []SponsorAssignment `json:"event_sponsors"`
	RegistrationCount int64               `json:"registration_count"`
}
