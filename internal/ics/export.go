// Package ics renders an event's session schedule as an iCalendar
// feed for attendees' calendar apps.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/confmed/icms-api/internal/domain"
)

const timeOfDayLayout = "15:04"

// Schedule serializes the published sessions of an event as a
// VCALENDAR. Sessions without a date are skipped; time-of-day strings
// that do not parse fall back to midnight.
func Schedule(event domain.Event, sessions []domain.SessionRecord) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//ICMS//Event Schedule//EN")
	cal.SetName(event.Title)

	for _, session := range sessions {
		if session.SessionDate == nil {
			continue
		}

		start := at(*session.SessionDate, session.StartTime)
		end := at(*session.SessionDate, session.EndTime)
		if !end.After(start) {
			end = start.Add(time.Hour)
		}

		entry := cal.AddEvent(fmt.Sprintf("session-%d@%s", session.ID, event.Slug))
		entry.SetStartAt(start)
		entry.SetEndAt(end)
		entry.SetSummary(session.Title)
		if session.Description != "" {
			entry.SetDescription(session.Description)
		}
		location := event.Location
		if session.Hall != "" {
			location = session.Hall
		}
		if location != "" {
			entry.SetLocation(location)
		}
		if session.Speaker != nil {
			entry.SetOrganizer(session.Speaker.Name)
		}
	}

	return cal.Serialize()
}

func at(date time.Time, timeOfDay string) time.Time {
	parsed, err := time.Parse(timeOfDayLayout, timeOfDay)
	if err != nil {
		return date
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
}
