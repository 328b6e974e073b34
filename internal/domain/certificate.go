package domain

import "time"

// Certificate is a CME (Continuing Medical Education) certificate
// issued for a paid registration of a completed event. The
// verification code is the public lookup key.
type Certificate struct {
	ID               uint      `json:"id"`
	EventID          uint      `json:"event_id"`
	RegistrationID   uint      `json:"registration_id"`
	AttendeeName     string    `json:"attendee_name"`
	EventTitle       string    `json:"event_title"`
	CMECredits       float64   `json:"cme_credits"`
	VerificationCode string    `json:"verification_code"`
	IssuedAt         time.Time `json:"issued_at"`
}
