package response

import "github.com/confmed/icms-api/internal/domain"

// DuplicateEventResponse wraps the newly created aggregate with the
// reminder that its dates were recalculated and need review.
type DuplicateEventResponse struct {
	Message string                `json:"message"`
	Event   domain.EventAggregate `json:"event"`
}
