package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

type User struct {
	ID        uint      `json:"id"`
	TenantID  uint      `json:"tenant_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanManageEvents reports whether the user holds the events management
// capability.
func (u User) CanManageEvents() bool {
	return u.Role == RoleAdmin || u.Role == RoleOrganizer
}
