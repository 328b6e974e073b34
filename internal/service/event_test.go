package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confmed/icms-api/internal/dateshift"
	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository"
)

// fakeEventRepo is an in-memory EventRepository for tests. Writes are
// atomic: an injected error leaves the store untouched.
type fakeEventRepo struct {
	nextID     uint
	events     map[uint]domain.EventAggregate
	createErr  error
	writeCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextID: 1,
		events: make(map[uint]domain.EventAggregate),
	}
}

func (f *fakeEventRepo) put(aggregate domain.EventAggregate) domain.EventAggregate {
	id := f.nextID
	f.nextID++
	aggregate.Event.ID = id
	for i := range aggregate.PricingCategories {
		aggregate.PricingCategories[i].ID = f.nextID
		aggregate.PricingCategories[i].EventID = id
		f.nextID++
	}
	for i := range aggregate.EventSpeakers {
		aggregate.EventSpeakers[i].ID = f.nextID
		aggregate.EventSpeakers[i].EventID = id
		f.nextID++
	}
	for i := range aggregate.EventSessions {
		aggregate.EventSessions[i].ID = f.nextID
		aggregate.EventSessions[i].EventID = id
		f.nextID++
	}
	for i := range aggregate.EventSponsors {
		aggregate.EventSponsors[i].ID = f.nextID
		aggregate.EventSponsors[i].EventID = id
		f.nextID++
	}
	f.events[id] = aggregate

	return aggregate
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	created := f.put(domain.EventAggregate{Event: event})

	return created.Event, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uint) (domain.Event, error) {
	aggregate, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return aggregate.Event, nil
}

func (f *fakeEventRepo) GetPublishedBySlug(_ context.Context, slug string) (domain.Event, error) {
	for _, aggregate := range f.events {
		if aggregate.Event.Slug == slug && aggregate.Event.IsPublished {
			return aggregate.Event, nil
		}
	}

	return domain.Event{}, repository.ErrEventNotFound
}

func (f *fakeEventRepo) List(_ context.Context, tenantID uint) ([]domain.Event, error) {
	var events []domain.Event
	for _, aggregate := range f.events {
		if aggregate.Event.TenantID == tenantID {
			events = append(events, aggregate.Event)
		}
	}

	return events, nil
}

func (f *fakeEventRepo) ListPublished(_ context.Context) ([]domain.Event, error) {
	var events []domain.Event
	for _, aggregate := range f.events {
		if aggregate.Event.IsPublished {
			events = append(events, aggregate.Event)
		}
	}

	return events, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	aggregate, ok := f.events[event.ID]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	aggregate.Event = event
	f.events[event.ID] = aggregate

	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)

	return nil
}

func (f *fakeEventRepo) GetAggregateByID(_ context.Context, id uint) (domain.EventAggregate, error) {
	aggregate, ok := f.events[id]
	if !ok {
		return domain.EventAggregate{}, repository.ErrEventNotFound
	}

	return aggregate, nil
}

func (f *fakeEventRepo) CreateAggregate(_ context.Context, aggregate domain.EventAggregate) (domain.EventAggregate, error) {
	f.writeCalls++
	if f.createErr != nil {
		return domain.EventAggregate{}, f.createErr
	}

	return f.put(aggregate), nil
}

func (f *fakeEventRepo) CreateSpeakerAssignment(_ context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	aggregate := f.events[assignment.EventID]
	assignment.ID = f.nextID
	f.nextID++
	aggregate.EventSpeakers = append(aggregate.EventSpeakers, assignment)
	f.events[assignment.EventID] = aggregate

	return assignment, nil
}

func (f *fakeEventRepo) GetSpeakerAssignmentByID(_ context.Context, id uint) (domain.SpeakerAssignment, error) {
	for _, aggregate := range f.events {
		for _, assignment := range aggregate.EventSpeakers {
			if assignment.ID == id {
				return assignment, nil
			}
		}
	}

	return domain.SpeakerAssignment{}, repository.ErrAssignmentNotFound
}

func (f *fakeEventRepo) UpdateSpeakerAssignment(_ context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	aggregate := f.events[assignment.EventID]
	for i := range aggregate.EventSpeakers {
		if aggregate.EventSpeakers[i].ID == assignment.ID {
			aggregate.EventSpeakers[i] = assignment
			f.events[assignment.EventID] = aggregate

			return assignment, nil
		}
	}

	return domain.SpeakerAssignment{}, repository.ErrAssignmentNotFound
}

func (f *fakeEventRepo) DeleteSpeakerAssignment(_ context.Context, eventID, id uint) error {
	aggregate := f.events[eventID]
	for i := range aggregate.EventSpeakers {
		if aggregate.EventSpeakers[i].ID == id {
			aggregate.EventSpeakers = append(aggregate.EventSpeakers[:i], aggregate.EventSpeakers[i+1:]...)
			f.events[eventID] = aggregate

			return nil
		}
	}

	return repository.ErrAssignmentNotFound
}

func (f *fakeEventRepo) CreateSession(_ context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	aggregate := f.events[session.EventID]
	session.ID = f.nextID
	f.nextID++
	aggregate.EventSessions = append(aggregate.EventSessions, session)
	f.events[session.EventID] = aggregate

	return session, nil
}

func (f *fakeEventRepo) GetSessionByID(_ context.Context, id uint) (domain.SessionRecord, error) {
	for _, aggregate := range f.events {
		for _, session := range aggregate.EventSessions {
			if session.ID == id {
				return session, nil
			}
		}
	}

	return domain.SessionRecord{}, repository.ErrSessionNotFound
}

func (f *fakeEventRepo) UpdateSession(_ context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	aggregate := f.events[session.EventID]
	for i := range aggregate.EventSessions {
		if aggregate.EventSessions[i].ID == session.ID {
			aggregate.EventSessions[i] = session
			f.events[session.EventID] = aggregate

			return session, nil
		}
	}

	return domain.SessionRecord{}, repository.ErrSessionNotFound
}

func (f *fakeEventRepo) DeleteSession(_ context.Context, eventID, id uint) error {
	aggregate := f.events[eventID]
	for i := range aggregate.EventSessions {
		if aggregate.EventSessions[i].ID == id {
			aggregate.EventSessions = append(aggregate.EventSessions[:i], aggregate.EventSessions[i+1:]...)
			f.events[eventID] = aggregate

			return nil
		}
	}

	return repository.ErrSessionNotFound
}

func (f *fakeEventRepo) ListSessionsByEventID(_ context.Context, eventID uint) ([]domain.SessionRecord, error) {
	return f.events[eventID].EventSessions, nil
}

func (f *fakeEventRepo) CreateSponsorAssignment(_ context.Context, assignment domain.SponsorAssignment) (domain.SponsorAssignment, error) {
	aggregate := f.events[assignment.EventID]
	assignment.ID = f.nextID
	f.nextID++
	aggregate.EventSponsors = append(aggregate.EventSponsors, assignment)
	f.events[assignment.EventID] = aggregate

	return assignment, nil
}

func (f *fakeEventRepo) DeleteSponsorAssignment(_ context.Context, eventID, id uint) error {
	aggregate := f.events[eventID]
	for i := range aggregate.EventSponsors {
		if aggregate.EventSponsors[i].ID == id {
			aggregate.EventSponsors = append(aggregate.EventSponsors[:i], aggregate.EventSponsors[i+1:]...)
			f.events[eventID] = aggregate

			return nil
		}
	}

	return repository.ErrAssignmentNotFound
}

func (f *fakeEventRepo) CreatePricingCategory(_ context.Context, category domain.PricingCategory) (domain.PricingCategory, error) {
	aggregate := f.events[category.EventID]
	category.ID = f.nextID
	f.nextID++
	aggregate.PricingCategories = append(aggregate.PricingCategories, category)
	f.events[category.EventID] = aggregate

	return category, nil
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func newTestEventService(repo *fakeEventRepo) *EventService {
	svc := NewEventService(repo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	return svc
}

func seedSourceEvent(repo *fakeEventRepo) domain.EventAggregate {
	return repo.put(domain.EventAggregate{
		Event: domain.Event{
			TenantID:              1,
			Title:                 "Amsterdam Cardiology Summit",
			Slug:                  "amsterdam-cardiology-summit",
			Description:           "Two days of interventional cardiology.",
			Location:              "Amsterdam",
			Venue:                 "RAI Convention Centre",
			StartDate:             day(2026, time.January, 8),
			EndDate:               day(2026, time.January, 9),
			StartTime:             "09:00",
			EndTime:               "17:30",
			RegistrationDeadline:  day(2026, time.January, 5),
			RegistrationOpensDate: day(2025, time.November, 1),
			EarlyBirdDeadline:     day(2025, time.December, 15),
			Price:                 450,
			Currency:              "EUR",
			CMECredits:            12,
			Status:                domain.EventStatusPublished,
			IsPublished:           true,
			IsFeatured:            true,
			IsRegistrationOpen:    true,
		},
		PricingCategories: []domain.PricingCategory{
			{Name: "Resident", Slots: 50, Price: 250, EarlyBirdDeadline: day(2026, time.January, 6), DisplayOrder: 1},
			{Name: "Consultant", Slots: 200, Price: 450, DisplayOrder: 2},
		},
		EventSpeakers: []domain.SpeakerAssignment{
			{SpeakerID: 7, Topic: "TAVI outcomes", SessionDate: day(2026, time.January, 8), SessionOrder: 1, Status: domain.SpeakerStatusConfirmed, IsPublished: true},
		},
		EventSessions: []domain.SessionRecord{
			{Title: "Opening keynote", SessionDate: day(2026, time.January, 8), StartTime: "09:00", EndTime: "10:00", SessionOrder: 1, Status: domain.SessionStatusCompleted, IsPublished: true},
			{Title: "Closing panel", SessionDate: day(2026, time.January, 9), SessionOrder: 2, Status: domain.SessionStatusScheduled, IsPublished: true},
		},
		EventSponsors: []domain.SponsorAssignment{
			{SponsorID: 3, Tier: "gold", DisplayOrder: 1, IsPublished: true},
		},
	})
}

func TestDuplicateEvent_ShiftsDates(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	clone, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	// Anchor is the source end date advanced three calendar months.
	wantStart := time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, clone.Event.StartDate)
	require.NotNil(t, clone.Event.EndDate)
	assert.Equal(t, wantStart, *clone.Event.StartDate)

	// The one-day span survives.
	assert.Equal(t,
		dateshift.DayOffset(*source.Event.StartDate, *source.Event.EndDate),
		dateshift.DayOffset(*clone.Event.StartDate, *clone.Event.EndDate))
	assert.Equal(t, wantStart.AddDate(0, 0, 1), *clone.Event.EndDate)

	// Anchored event dates keep their offsets from the start date.
	require.NotNil(t, clone.Event.RegistrationDeadline)
	assert.Equal(t, wantStart.AddDate(0, 0, -3), *clone.Event.RegistrationDeadline)
	require.NotNil(t, clone.Event.EarlyBirdDeadline)
	assert.Equal(t,
		dateshift.DayOffset(*source.Event.StartDate, *source.Event.EarlyBirdDeadline),
		dateshift.DayOffset(*clone.Event.StartDate, *clone.Event.EarlyBirdDeadline))

	// Dependent dates shift the same way: the resident early-bird sat
	// two days before the start, the speaker spoke on day one.
	require.Len(t, clone.PricingCategories, 2)
	require.NotNil(t, clone.PricingCategories[0].EarlyBirdDeadline)
	assert.Equal(t, wantStart.AddDate(0, 0, -2), *clone.PricingCategories[0].EarlyBirdDeadline)
	assert.Nil(t, clone.PricingCategories[1].EarlyBirdDeadline)

	require.Len(t, clone.EventSpeakers, 1)
	require.NotNil(t, clone.EventSpeakers[0].SessionDate)
	assert.Equal(t, wantStart, *clone.EventSpeakers[0].SessionDate)

	require.Len(t, clone.EventSessions, 2)
	require.NotNil(t, clone.EventSessions[1].SessionDate)
	assert.Equal(t, wantStart.AddDate(0, 0, 1), *clone.EventSessions[1].SessionDate)
}

func TestDuplicateEvent_CopiesStaticFieldsVerbatim(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	clone, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	assert.Equal(t, source.Event.Title, clone.Event.Title)
	assert.Equal(t, source.Event.Description, clone.Event.Description)
	assert.Equal(t, source.Event.Location, clone.Event.Location)
	assert.Equal(t, source.Event.Venue, clone.Event.Venue)
	assert.Equal(t, source.Event.StartTime, clone.Event.StartTime)
	assert.Equal(t, source.Event.EndTime, clone.Event.EndTime)
	assert.Equal(t, source.Event.Price, clone.Event.Price)
	assert.Equal(t, source.Event.Currency, clone.Event.Currency)
	assert.Equal(t, source.Event.CMECredits, clone.Event.CMECredits)
	assert.NotEqual(t, source.Event.Slug, clone.Event.Slug)
	assert.Contains(t, clone.Event.Slug, "copy")

	require.Len(t, clone.PricingCategories, 2)
	assert.Equal(t, "Resident", clone.PricingCategories[0].Name)
	assert.Equal(t, 50, clone.PricingCategories[0].Slots)
	assert.Equal(t, 250.0, clone.PricingCategories[0].Price)

	require.Len(t, clone.EventSpeakers, 1)
	assert.Equal(t, uint(7), clone.EventSpeakers[0].SpeakerID)
	assert.Equal(t, "TAVI outcomes", clone.EventSpeakers[0].Topic)

	require.Len(t, clone.EventSponsors, 1)
	assert.Equal(t, uint(3), clone.EventSponsors[0].SponsorID)
	assert.Equal(t, "gold", clone.EventSponsors[0].Tier)
	assert.Equal(t, int64(0), clone.RegistrationCount)
}

func TestDuplicateEvent_ResetsWorkflowState(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	clone, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.EventStatusDraft, clone.Event.Status)
	assert.False(t, clone.Event.IsPublished)
	assert.False(t, clone.Event.IsFeatured)
	assert.False(t, clone.Event.IsRegistrationOpen)

	for _, assignment := range clone.EventSpeakers {
		assert.Equal(t, domain.SpeakerStatusPending, assignment.Status)
		assert.False(t, assignment.IsPublished)
	}
	for _, session := range clone.EventSessions {
		assert.Equal(t, domain.SessionStatusScheduled, session.Status)
		assert.False(t, session.IsPublished)
	}
	for _, assignment := range clone.EventSponsors {
		assert.False(t, assignment.IsPublished)
	}
}

func TestDuplicateEvent_AbsentStartDate(t *testing.T) {
	repo := newFakeEventRepo()
	source := repo.put(domain.EventAggregate{
		Event: domain.Event{
			Title: "Dateless Workshop",
			Slug:  "dateless-workshop",
		},
		PricingCategories: []domain.PricingCategory{
			{Name: "Standard", Slots: 10, Price: 100, EarlyBirdDeadline: day(2026, time.May, 1)},
		},
		EventSpeakers: []domain.SpeakerAssignment{
			{SpeakerID: 2, Topic: "Untitled", SessionDate: day(2026, time.May, 2)},
		},
	})
	svc := newTestEventService(repo)

	clone, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	// now() + 3 months, single-day event.
	wantStart := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	require.NotNil(t, clone.Event.StartDate)
	assert.Equal(t, wantStart, *clone.Event.StartDate)
	require.NotNil(t, clone.Event.EndDate)
	assert.Equal(t, wantStart, *clone.Event.EndDate)

	// No anchor means every dependent date comes out absent, even
	// when the dependent itself had one.
	require.Len(t, clone.PricingCategories, 1)
	assert.Nil(t, clone.PricingCategories[0].EarlyBirdDeadline)
	require.Len(t, clone.EventSpeakers, 1)
	assert.Nil(t, clone.EventSpeakers[0].SessionDate)
}

func TestDuplicateEvent_StartDateOnlyAnchor(t *testing.T) {
	repo := newFakeEventRepo()
	source := repo.put(domain.EventAggregate{
		Event: domain.Event{
			Title:     "One Day Symposium",
			Slug:      "one-day-symposium",
			StartDate: day(2026, time.January, 30),
		},
	})
	svc := newTestEventService(repo)

	clone, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	// No end date, so the start date anchors the three-month shift.
	// April has 30 days, so no rollover here.
	require.NotNil(t, clone.Event.StartDate)
	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), *clone.Event.StartDate)
	// Without a start/end pair the clone is single-day.
	require.NotNil(t, clone.Event.EndDate)
	assert.Equal(t, *clone.Event.StartDate, *clone.Event.EndDate)
}

func TestDuplicateEvent_AtomicFailure(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	repo.createErr = errors.New("unique constraint violation")

	_, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.Error(t, err)

	// Only the source survives; the failed clone left nothing behind.
	assert.Len(t, repo.events, 1)
	assert.Equal(t, 1, repo.writeCalls)
}

func TestDuplicateEvent_Independence(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	before := repo.events[source.Event.ID]

	first, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)
	second, err := svc.DuplicateEvent(context.Background(), source.Event.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.Event.ID, second.Event.ID)
	assert.NotEqual(t, first.Event.Slug, second.Event.Slug)

	// The source aggregate is untouched.
	after := repo.events[source.Event.ID]
	assert.Equal(t, before.Event, after.Event)
	assert.Equal(t, before.PricingCategories, after.PricingCategories)
	assert.Equal(t, before.EventSpeakers, after.EventSpeakers)
	assert.Equal(t, before.EventSessions, after.EventSessions)
	assert.Equal(t, before.EventSponsors, after.EventSponsors)
}

func TestDuplicateEvent_NotFound(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestEventService(repo)

	_, err := svc.DuplicateEvent(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAddSession_ValidatesDateWindow(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	_, err := svc.AddSession(context.Background(), domain.SessionRecord{
		EventID:     source.Event.ID,
		Title:       "Late addition",
		SessionDate: day(2026, time.February, 1),
	})
	assert.ErrorIs(t, err, ErrSessionOutsideEvent)

	created, err := svc.AddSession(context.Background(), domain.SessionRecord{
		EventID:     source.Event.ID,
		Title:       "Day two workshop",
		SessionDate: day(2026, time.January, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusScheduled, created.Status)
}

func TestUpdateEvent_RejectsEndBeforeStart(t *testing.T) {
	repo := newFakeEventRepo()
	source := seedSourceEvent(repo)
	svc := newTestEventService(repo)

	event := source.Event
	event.StartDate = day(2026, time.January, 10)
	event.EndDate = day(2026, time.January, 8)

	_, err := svc.UpdateEvent(context.Background(), event)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}
