package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/confmed/icms-api/internal/dateshift"
	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository"
)

var (
	ErrEventNotFound      = repository.ErrEventNotFound
	ErrSlugExists         = repository.ErrSlugExists
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound
	ErrSessionNotFound    = repository.ErrSessionNotFound
	ErrSpeakerNotFound    = repository.ErrSpeakerNotFound
	ErrSponsorNotFound    = repository.ErrSponsorNotFound

	ErrEndBeforeStart      = errors.New("end date is before start date")
	ErrSessionOutsideEvent = errors.New("session date falls outside the event dates")
)

// DuplicatedMessage accompanies every successful duplicate response.
const DuplicatedMessage = "Event duplicated successfully. Please review and update the dates before publishing."

// duplicateShiftMonths is how far a clone's anchor date moves past the
// source's end (or start) date.
const duplicateShiftMonths = 3

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Event, error)
	List(ctx context.Context, tenantID uint) ([]domain.Event, error)
	ListPublished(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	GetAggregateByID(ctx context.Context, id uint) (domain.EventAggregate, error)
	CreateAggregate(ctx context.Context, aggregate domain.EventAggregate) (domain.EventAggregate, error)

	CreateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error)
	GetSpeakerAssignmentByID(ctx context.Context, id uint) (domain.SpeakerAssignment, error)
	UpdateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error)
	DeleteSpeakerAssignment(ctx context.Context, eventID, id uint) error
	CreateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error)
	GetSessionByID(ctx context.Context, id uint) (domain.SessionRecord, error)
	UpdateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error)
	DeleteSession(ctx context.Context, eventID, id uint) error
	ListSessionsByEventID(ctx context.Context, eventID uint) ([]domain.SessionRecord, error)
	CreateSponsorAssignment(ctx context.Context, assignment domain.SponsorAssignment) (domain.SponsorAssignment, error)
	DeleteSponsorAssignment(ctx context.Context, eventID, id uint) error
	CreatePricingCategory(ctx context.Context, category domain.PricingCategory) (domain.PricingCategory, error)
}

// EventCache is a best-effort read-through cache for published event
// aggregates. Errors degrade to cache misses.
type EventCache interface {
	GetAggregate(ctx context.Context, slug string) (domain.EventAggregate, error)
	SetAggregate(ctx context.Context, slug string, aggregate domain.EventAggregate) error
	Invalidate(ctx context.Context, slug string) error
}

type EventService struct {
	repo  EventRepository
	cache EventCache

	now          func() time.Time
	generateSlug func(title string) string
}

func NewEventService(repo EventRepository, cache EventCache) *EventService {
	return &EventService{
		repo:         repo,
		cache:        cache,
		now:          time.Now,
		generateSlug: GenerateUniqueSlug,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, categories []domain.PricingCategory) (domain.EventAggregate, error) {
	if event.StartDate != nil && event.EndDate != nil && event.EndDate.Before(*event.StartDate) {
		return domain.EventAggregate{}, ErrEndBeforeStart
	}

	if event.Slug == "" {
		event.Slug = s.generateSlug(event.Title)
	}
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}

	created, err := s.repo.CreateAggregate(ctx, domain.EventAggregate{
		Event:             event,
		PricingCategories: categories,
	})
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.CreateAggregate -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEventAggregate(ctx context.Context, eventID uint) (domain.EventAggregate, error) {
	aggregate, err := s.repo.GetAggregateByID(ctx, eventID)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.GetAggregateByID -> %w", err)
	}

	return aggregate, nil
}

func (s *EventService) ListEvents(ctx context.Context, tenantID uint) ([]domain.Event, error) {
	events, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListPublishedEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPublished -> %w", err)
	}

	return events, nil
}

// GetPublicEventBySlug serves the public event page: cache first, then
// the database, re-priming the cache on a miss.
func (s *EventService) GetPublicEventBySlug(ctx context.Context, slug string) (domain.EventAggregate, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAggregate(ctx, slug)
		if err == nil {
			return cached, nil
		}
	}

	event, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.GetPublishedBySlug -> %w", err)
	}

	aggregate, err := s.repo.GetAggregateByID(ctx, event.ID)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.GetAggregateByID -> %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetAggregate(ctx, slug, aggregate); err != nil {
			zap.L().Warn("failed to prime event cache", zap.String("slug", slug), zap.Error(err))
		}
	}

	return aggregate, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.StartDate != nil && event.EndDate != nil && event.EndDate.Before(*event.StartDate) {
		return domain.Event{}, ErrEndBeforeStart
	}

	existing, err := s.repo.GetByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	event.TenantID = existing.TenantID
	event.Slug = existing.Slug
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.invalidateCache(ctx, updated.Slug)

	return updated, nil
}

func (s *EventService) SetPublished(ctx context.Context, eventID uint, published bool) (domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	event.IsPublished = published
	if published {
		event.Status = domain.EventStatusPublished
	} else {
		event.Status = domain.EventStatusDraft
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.invalidateCache(ctx, updated.Slug)

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID uint) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return nil
}

// DuplicateEvent clones an event aggregate. The clone's start date is
// the source's end date (falling back to start date, then to now)
// advanced three calendar months; every other date keeps its day
// offset from the source's start date. Workflow and publication state
// reset so the clone starts life as an unreviewed draft. The write is
// atomic: either the full aggregate persists or nothing does. The
// source is never modified, and duplicating twice yields two
// independent clones.
func (s *EventService) DuplicateEvent(ctx context.Context, eventID uint) (domain.EventAggregate, error) {
	source, err := s.repo.GetAggregateByID(ctx, eventID)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.GetAggregateByID -> %w", err)
	}

	src := source.Event

	anchor := s.now()
	switch {
	case src.EndDate != nil:
		anchor = *src.EndDate
	case src.StartDate != nil:
		anchor = *src.StartDate
	}
	newStart := dateshift.AddMonths(anchor, duplicateShiftMonths)

	newEnd := newStart
	if src.StartDate != nil && src.EndDate != nil {
		newEnd = dateshift.AddDays(newStart, dateshift.DayOffset(*src.StartDate, *src.EndDate))
	}

	shift := dateshift.Shifter{SourceStart: src.StartDate, NewStart: newStart}

	clone := src
	clone.ID = 0
	clone.Slug = s.generateSlug(src.Title + " Copy")
	clone.StartDate = &newStart
	clone.EndDate = &newEnd
	clone.RegistrationDeadline = shift.Shift(src.RegistrationDeadline)
	clone.RegistrationOpensDate = shift.Shift(src.RegistrationOpensDate)
	clone.EarlyBirdDeadline = shift.Shift(src.EarlyBirdDeadline)
	clone.Status = domain.EventStatusDraft
	clone.IsPublished = false
	clone.IsFeatured = false
	// Registration stays closed until the clone has been reviewed.
	clone.IsRegistrationOpen = false
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}

	categories := make([]domain.PricingCategory, len(source.PricingCategories))
	for i, c := range source.PricingCategories {
		c.ID = 0
		c.EventID = 0
		c.EarlyBirdDeadline = shift.Shift(c.EarlyBirdDeadline)
		categories[i] = c
	}

	speakers := make([]domain.SpeakerAssignment, len(source.EventSpeakers))
	for i, a := range source.EventSpeakers {
		a.ID = 0
		a.EventID = 0
		a.Speaker = nil
		a.SessionDate = shift.Shift(a.SessionDate)
		a.Status = domain.SpeakerStatusPending
		a.IsPublished = false
		speakers[i] = a
	}

	sessions := make([]domain.SessionRecord, len(source.EventSessions))
	for i, r := range source.EventSessions {
		r.ID = 0
		r.EventID = 0
		r.Speaker = nil
		r.SessionDate = shift.Shift(r.SessionDate)
		r.Status = domain.SessionStatusScheduled
		r.IsPublished = false
		sessions[i] = r
	}

	sponsors := make([]domain.SponsorAssignment, len(source.EventSponsors))
	for i, a := range source.EventSponsors {
		a.ID = 0
		a.EventID = 0
		a.Sponsor = nil
		a.IsPublished = false
		sponsors[i] = a
	}

	created, err := s.repo.CreateAggregate(ctx, domain.EventAggregate{
		Event:             clone,
		PricingCategories: categories,
		EventSpeakers:     speakers,
		EventSessions:     sessions,
		EventSponsors:     sponsors,
	})
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("s.repo.CreateAggregate -> %w", err)
	}

	return created, nil
}

func (s *EventService) invalidateCache(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		zap.L().Warn("failed to invalidate event cache", zap.String("slug", slug), zap.Error(err))
	}
}

func (s *EventService) AddSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	event, err := s.repo.GetByID(ctx, assignment.EventID)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := validateSessionDate(event, assignment.SessionDate); err != nil {
		return domain.SpeakerAssignment{}, err
	}

	if assignment.Status == "" {
		assignment.Status = domain.SpeakerStatusPending
	}

	created, err := s.repo.CreateSpeakerAssignment(ctx, assignment)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("s.repo.CreateSpeakerAssignment -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return created, nil
}

func (s *EventService) UpdateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	existing, err := s.repo.GetSpeakerAssignmentByID(ctx, assignment.ID)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("s.repo.GetSpeakerAssignmentByID -> %w", err)
	}
	if existing.EventID != assignment.EventID {
		return domain.SpeakerAssignment{}, ErrAssignmentNotFound
	}

	event, err := s.repo.GetByID(ctx, assignment.EventID)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := validateSessionDate(event, assignment.SessionDate); err != nil {
		return domain.SpeakerAssignment{}, err
	}

	updated, err := s.repo.UpdateSpeakerAssignment(ctx, assignment)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("s.repo.UpdateSpeakerAssignment -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return updated, nil
}

func (s *EventService) RemoveSpeakerAssignment(ctx context.Context, eventID, id uint) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := s.repo.DeleteSpeakerAssignment(ctx, eventID, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSpeakerAssignment -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return nil
}

func (s *EventService) AddSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	event, err := s.repo.GetByID(ctx, session.EventID)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := validateSessionDate(event, session.SessionDate); err != nil {
		return domain.SessionRecord{}, err
	}

	if session.Status == "" {
		session.Status = domain.SessionStatusScheduled
	}

	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("s.repo.CreateSession -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return created, nil
}

func (s *EventService) UpdateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	existing, err := s.repo.GetSessionByID(ctx, session.ID)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("s.repo.GetSessionByID -> %w", err)
	}
	if existing.EventID != session.EventID {
		return domain.SessionRecord{}, ErrSessionNotFound
	}

	event, err := s.repo.GetByID(ctx, session.EventID)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := validateSessionDate(event, session.SessionDate); err != nil {
		return domain.SessionRecord{}, err
	}

	updated, err := s.repo.UpdateSession(ctx, session)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("s.repo.UpdateSession -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return updated, nil
}

func (s *EventService) RemoveSession(ctx context.Context, eventID, id uint) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := s.repo.DeleteSession(ctx, eventID, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSession -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return nil
}

func (s *EventService) ListSessions(ctx context.Context, eventID uint) ([]domain.SessionRecord, error) {
	sessions, err := s.repo.ListSessionsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSessionsByEventID -> %w", err)
	}

	return sessions, nil
}

func (s *EventService) AddSponsorAssignment(ctx context.Context, assignment domain.SponsorAssignment) (domain.SponsorAssignment, error) {
	event, err := s.repo.GetByID(ctx, assignment.EventID)
	if err != nil {
		return domain.SponsorAssignment{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	created, err := s.repo.CreateSponsorAssignment(ctx, assignment)
	if err != nil {
		return domain.SponsorAssignment{}, fmt.Errorf("s.repo.CreateSponsorAssignment -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return created, nil
}

func (s *EventService) RemoveSponsorAssignment(ctx context.Context, eventID, id uint) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if err := s.repo.DeleteSponsorAssignment(ctx, eventID, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSponsorAssignment -> %w", err)
	}

	s.invalidateCache(ctx, event.Slug)

	return nil
}

// validateSessionDate rejects a session date outside the owning
// event's start/end window. Events without dates accept any session
// date.
func validateSessionDate(event domain.Event, sessionDate *time.Time) error {
	if sessionDate == nil || event.StartDate == nil || event.EndDate == nil {
		return nil
	}

	if sessionDate.Before(*event.StartDate) || sessionDate.After(*event.EndDate) {
		return ErrSessionOutsideEvent
	}

	return nil
}
