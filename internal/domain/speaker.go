package domain

import "time"

type Speaker struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Specialty    string    `json:"specialty"`
	Organization string    `json:"organization"`
	Bio          string    `json:"bio"`
	PhotoURL     string    `json:"photo_url"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
