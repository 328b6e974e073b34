package domain

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type Registration struct {
	ID                uint      `json:"id"`
	EventID           uint      `json:"event_id"`
	UserID            uint      `json:"user_id"`
	PricingCategoryID uint      `json:"pricing_category_id"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	PaymentStatus     string    `json:"payment_status"`
	PaymentIntentID   string    `json:"payment_intent_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
