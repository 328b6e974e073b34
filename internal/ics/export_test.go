package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/confmed/icms-api/internal/domain"
)

func TestSchedule(t *testing.T) {
	day := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	event := domain.Event{
		Title:    "Amsterdam Cardiology Summit",
		Slug:     "amsterdam-cardiology-summit",
		Location: "Amsterdam",
	}
	sessions := []domain.SessionRecord{
		{
			ID:          1,
			Title:       "Keynote",
			Description: "Opening keynote",
			SessionDate: &day,
			StartTime:   "09:00",
			EndTime:     "10:00",
			Hall:        "Main Hall",
			Speaker:     &domain.Speaker{Name: "Dr. Jansen"},
		},
		{
			ID:    2,
			Title: "Unscheduled workshop",
		},
	}

	calendar := Schedule(event, sessions)

	assert.Contains(t, calendar, "BEGIN:VCALENDAR")
	assert.Contains(t, calendar, "SUMMARY:Keynote")
	assert.Contains(t, calendar, "DTSTART:20260108T090000Z")
	assert.Contains(t, calendar, "DTEND:20260108T100000Z")
	assert.Contains(t, calendar, "LOCATION:Main Hall")
	assert.Contains(t, calendar, "UID:session-1@amsterdam-cardiology-summit")
	assert.NotContains(t, calendar, "Unscheduled workshop")
}

func TestSchedule_FallsBackToEventLocation(t *testing.T) {
	day := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	event := domain.Event{Title: "Summit", Slug: "summit", Location: "Amsterdam"}
	sessions := []domain.SessionRecord{
		{ID: 3, Title: "Panel", SessionDate: &day, StartTime: "14:00", EndTime: "13:00"},
	}

	calendar := Schedule(event, sessions)

	assert.Contains(t, calendar, "LOCATION:Amsterdam")
	// end before start gets a one hour default
	assert.Contains(t, calendar, "DTEND:20260109T150000Z")
}
