package request

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type PricingCategoryRequest struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Slots             int        `json:"slots"`
	Price             float64    `json:"price"`
	EarlyBirdPrice    float64    `json:"early_bird_price"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline"`
	DisplayOrder      int        `json:"display_order"`
}

func (req PricingCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Slots, validation.Min(0)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.EarlyBirdPrice, validation.Min(0.0)),
	)
}

type CreateEventRequest struct {
	Title       string `json:"title"`
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

	PricingCategories []PricingCategoryRequest `json:"pricing_categories"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.StartTime, validation.Match(timeOfDayPattern)),
		validation.Field(&req.EndTime, validation.Match(timeOfDayPattern)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.CMECredits, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}

	for _, category := range req.PricingCategories {
		if err := category.Validate(); err != nil {
			return err
		}
	}

	return nil
}

type UpdateEventRequest struct {
	CreateEventRequest
}

type SpeakerAssignmentRequest struct {
	SpeakerID    uint       `json:"speaker_id"`
	Topic        string     `json:"topic"`
	Description  string     `json:"description"`
	SessionDate  *time.Time `json:"session_date"`
	SessionOrder int        `json:"session_order"`
}

func (req *SpeakerAssignmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SpeakerID, validation.Required),
		validation.Field(&req.Topic, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.SessionOrder, validation.Min(0)),
	)
}

type SessionRequest struct {
	SpeakerID    *uint      `json:"speaker_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SessionDate  *time.Time `json:"session_date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Hall         string     `json:"hall"`
	SessionOrder int        `json:"session_order"`
}

func (req *SessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.StartTime, validation.Match(timeOfDayPattern)),
		validation.Field(&req.EndTime, validation.Match(timeOfDayPattern)),
		validation.Field(&req.SessionOrder, validation.Min(0)),
	)
}

type SponsorAssignmentRequest struct {
	SponsorID    uint   `json:"sponsor_id"`
	Tier         string `json:"tier"`
	DisplayOrder int    `json:"display_order"`
}

func (req *SponsorAssignmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SponsorID, validation.Required),
		validation.Field(&req.Tier, validation.Required, validation.In("platinum", "gold", "silver", "bronze", "partner")),
	)
}

type PublishEventRequest struct {
	IsPublished bool `json:"is_published"`
}
