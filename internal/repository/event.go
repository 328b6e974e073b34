package repository

import (
	"context"
	"fmt"

	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/repository/dao"
)

var (
	ErrEventNotFound      = dao.ErrEventNotFound
	ErrSlugExists         = dao.ErrSlugExists
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
	ErrSessionNotFound    = dao.ErrSessionNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	GetByID(ctx context.Context, id uint) (dao.Event, error)
	GetPublishedBySlug(ctx context.Context, slug string) (dao.Event, error)
	List(ctx context.Context, tenantID uint) ([]dao.Event, error)
	ListPublished(ctx context.Context) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	GetAggregateByID(ctx context.Context, id uint) (dao.EventAggregate, error)
	InsertAggregate(ctx context.Context, event dao.Event, categories []dao.PricingCategory, speakers []dao.SpeakerAssignment, sessions []dao.SessionRecord, sponsors []dao.SponsorAssignment) (dao.EventAggregate, error)

	InsertSpeakerAssignment(ctx context.Context, assignment dao.SpeakerAssignment) (dao.SpeakerAssignment, error)
	GetSpeakerAssignmentByID(ctx context.Context, id uint) (dao.SpeakerAssignment, error)
	UpdateSpeakerAssignment(ctx context.Context, assignment dao.SpeakerAssignment) (dao.SpeakerAssignment, error)
	DeleteSpeakerAssignment(ctx context.Context, eventID, id uint) error
	InsertSession(ctx context.Context, session dao.SessionRecord) (dao.SessionRecord, error)
	GetSessionByID(ctx context.Context, id uint) (dao.SessionRecord, error)
	UpdateSession(ctx context.Context, session dao.SessionRecord) (dao.SessionRecord, error)
	DeleteSession(ctx context.Context, eventID, id uint) error
	ListSessionsByEventID(ctx context.Context, eventID uint) ([]dao.SessionRecord, error)
	InsertSponsorAssignment(ctx context.Context, assignment dao.SponsorAssignment) (dao.SponsorAssignment, error)
	DeleteSponsorAssignment(ctx context.Context, eventID, id uint) error
	InsertPricingCategory(ctx context.Context, category dao.PricingCategory) (dao.PricingCategory, error)
	GetPricingCategoryByID(ctx context.Context, id uint) (dao.PricingCategory, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                    e.ID,
		TenantID:              e.TenantID,
		Title:                 e.Title,
		Slug:                  e.Slug,
		Description:           e.Description,
		Location:              e.Location,
		Venue:                 e.Venue,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		StartTime:             e.StartTime,
		EndTime:               e.EndTime,
		RegistrationDeadline:  e.RegistrationDeadline,
		RegistrationOpensDate: e.RegistrationOpensDate,
		EarlyBirdDeadline:     e.EarlyBirdDeadline,
		Price:                 e.Price,
		Currency:              e.Currency,
		CMECredits:            e.CMECredits,
		BannerURL:             e.BannerURL,
		Tags:                  e.Tags,
		Status:                string(e.Status),
		IsPublished:           e.IsPublished,
		IsFeatured:            e.IsFeatured,
		IsRegistrationOpen:    e.IsRegistrationOpen,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                    e.ID,
		TenantID:              e.TenantID,
		Title:                 e.Title,
		Slug:                  e.Slug,
		Description:           e.Description,
		Location:              e.Location,
		Venue:                 e.Venue,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		StartTime:             e.StartTime,
		EndTime:               e.EndTime,
		RegistrationDeadline:  e.RegistrationDeadline,
		RegistrationOpensDate: e.RegistrationOpensDate,
		EarlyBirdDeadline:     e.EarlyBirdDeadline,
		Price:                 e.Price,
		Currency:              e.Currency,
		CMECredits:            e.CMECredits,
		BannerURL:             e.BannerURL,
		Tags:                  e.Tags,
		Status:                domain.EventStatus(e.Status),
		IsPublished:           e.IsPublished,
		IsFeatured:            e.IsFeatured,
		IsRegistrationOpen:    e.IsRegistrationOpen,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (r *EventRepository) categoryDomainToDao(c domain.PricingCategory) dao.PricingCategory {
	return dao.PricingCategory{
		ID:                c.ID,
		EventID:           c.EventID,
		Name:              c.Name,
		Description:       c.Description,
		Slots:             c.Slots,
		Price:             c.Price,
		EarlyBirdPrice:    c.EarlyBirdPrice,
		EarlyBirdDeadline: c.EarlyBirdDeadline,
		DisplayOrder:      c.DisplayOrder,
	}
}

func (r *EventRepository) categoryDaoToDomain(c dao.PricingCategory) domain.PricingCategory {
	return domain.PricingCategory{
		ID:                c.ID,
		EventID:           c.EventID,
		Name:              c.Name,
		Description:       c.Description,
		Slots:             c.Slots,
		Price:             c.Price,
		EarlyBirdPrice:    c.EarlyBirdPrice,
		EarlyBirdDeadline: c.EarlyBirdDeadline,
		DisplayOrder:      c.DisplayOrder,
	}
}

func (r *EventRepository) speakerAssignmentDomainToDao(a domain.SpeakerAssignment) dao.SpeakerAssignment {
	return dao.SpeakerAssignment{
		ID:           a.ID,
		EventID:      a.EventID,
		SpeakerID:    a.SpeakerID,
		Topic:        a.Topic,
		Description:  a.Description,
		SessionDate:  a.SessionDate,
		SessionOrder: a.SessionOrder,
		Status:       a.Status,
		IsPublished:  a.IsPublished,
	}
}

func (r *EventRepository) speakerAssignmentDaoToDomain(a dao.SpeakerAssignment) domain.SpeakerAssignment {
	assignment := domain.SpeakerAssignment{
		ID:           a.ID,
		EventID:      a.EventID,
		SpeakerID:    a.SpeakerID,
		Topic:        a.Topic,
		Description:  a.Description,
		SessionDate:  a.SessionDate,
		SessionOrder: a.SessionOrder,
		Status:       a.Status,
		IsPublished:  a.IsPublished,
	}
	if a.Speaker.ID != 0 {
		speaker := speakerDaoToDomain(a.Speaker)
		assignment.Speaker = &speaker
	}

	return assignment
}

func (r *EventRepository) sessionDomainToDao(s domain.SessionRecord) dao.SessionRecord {
	return dao.SessionRecord{
		ID:           s.ID,
		EventID:      s.EventID,
		SpeakerID:    s.SpeakerID,
		Title:        s.Title,
		Description:  s.Description,
		SessionDate:  s.SessionDate,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Hall:         s.Hall,
		SessionOrder: s.SessionOrder,
		Status:       s.Status,
		IsPublished:  s.IsPublished,
	}
}

func (r *EventRepository) sessionDaoToDomain(s dao.SessionRecord) domain.SessionRecord {
	session := domain.SessionRecord{
		ID:           s.ID,
		EventID:      s.EventID,
		SpeakerID:    s.SpeakerID,
		Title:        s.Title,
		Description:  s.Description,
		SessionDate:  s.SessionDate,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Hall:         s.Hall,
		SessionOrder: s.SessionOrder,
		Status:       s.Status,
		IsPublished:  s.IsPublished,
	}
	if s.Speaker != nil && s.Speaker.ID != 0 {
		speaker := speakerDaoToDomain(*s.Speaker)
		session.Speaker = &speaker
	}

	return session
}

func (r *EventRepository) sponsorAssignmentDomainToDao(a domain.SponsorAssignment) dao.SponsorAssignment {
	return dao.SponsorAssignment{
		ID:           a.ID,
		EventID:      a.EventID,
		SponsorID:    a.SponsorID,
		Tier:         a.Tier,
		DisplayOrder: a.DisplayOrder,
		IsPublished:  a.IsPublished,
	}
}

func (r *EventRepository) sponsorAssignmentDaoToDomain(a dao.SponsorAssignment) domain.SponsorAssignment {
	assignment := domain.SponsorAssignment{
		ID:           a.ID,
		EventID:      a.EventID,
		SponsorID:    a.SponsorID,
		Tier:         a.Tier,
		DisplayOrder: a.DisplayOrder,
		IsPublished:  a.IsPublished,
	}
	if a.Sponsor.ID != 0 {
		sponsor := sponsorDaoToDomain(a.Sponsor)
		assignment.Sponsor = &sponsor
	}

	return assignment
}

func (r *EventRepository) aggregateDaoToDomain(a dao.EventAggregate) domain.EventAggregate {
	aggregate := domain.EventAggregate{
		Event:             r.eventDaoToDomain(a.Event),
		PricingCategories: make([]domain.PricingCategory, len(a.PricingCategories)),
		EventSpeakers:     make([]domain.SpeakerAssignment, len(a.EventSpeakers)),
		EventSessions:     make([]domain.SessionRecord, len(a.EventSessions)),
		EventSponsors:     make([]domain.SponsorAssignment, len(a.EventSponsors)),
		RegistrationCount: a.RegistrationCount,
	}
	for i, c := range a.PricingCategories {
		aggregate.PricingCategories[i] = r.categoryDaoToDomain(c)
	}
	for i, s := range a.EventSpeakers {
		aggregate.EventSpeakers[i] = r.speakerAssignmentDaoToDomain(s)
	}
	for i, s := range a.EventSessions {
		aggregate.EventSessions[i] = r.sessionDaoToDomain(s)
	}
	for i, s := range a.EventSponsors {
		aggregate.EventSponsors[i] = r.sponsorAssignmentDaoToDomain(s)
	}

	return aggregate
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.eventDaoToDomain(created), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.eventDaoToDomain(event), nil
}

func (r *EventRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.Event, error) {
	event, err := r.dao.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.GetPublishedBySlug -> %w", err)
	}

	return r.eventDaoToDomain(event), nil
}

func (r *EventRepository) List(ctx context.Context, tenantID uint) ([]domain.Event, error) {
	events, err := r.dao.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) ListPublished(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPublished -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) eventsDaoToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.eventDaoToDomain(e)
	}

	return result
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.eventDaoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.dao.Delete(ctx, id)
}

func (r *EventRepository) GetAggregateByID(ctx context.Context, id uint) (domain.EventAggregate, error) {
	aggregate, err := r.dao.GetAggregateByID(ctx, id)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("r.dao.GetAggregateByID -> %w", err)
	}

	return r.aggregateDaoToDomain(aggregate), nil
}

// CreateAggregate persists a new event with all of its dependents as
// one atomic unit and returns the aggregate as re-read from storage.
func (r *EventRepository) CreateAggregate(ctx context.Context, aggregate domain.EventAggregate) (domain.EventAggregate, error) {
	event := r.eventDomainToDao(aggregate.Event)

	categories := make([]dao.PricingCategory, len(aggregate.PricingCategories))
	for i, c := range aggregate.PricingCategories {
		categories[i] = r.categoryDomainToDao(c)
	}
	speakers := make([]dao.SpeakerAssignment, len(aggregate.EventSpeakers))
	for i, s := range aggregate.EventSpeakers {
		speakers[i] = r.speakerAssignmentDomainToDao(s)
	}
	sessions := make([]dao.SessionRecord, len(aggregate.EventSessions))
	for i, s := range aggregate.EventSessions {
		sessions[i] = r.sessionDomainToDao(s)
	}
	sponsors := make([]dao.SponsorAssignment, len(aggregate.EventSponsors))
	for i, s := range aggregate.EventSponsors {
		sponsors[i] = r.sponsorAssignmentDomainToDao(s)
	}

	created, err := r.dao.InsertAggregate(ctx, event, categories, speakers, sessions, sponsors)
	if err != nil {
		return domain.EventAggregate{}, fmt.Errorf("r.dao.InsertAggregate -> %w", err)
	}

	return r.aggregateDaoToDomain(created), nil
}

func (r *EventRepository) CreateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	created, err := r.dao.InsertSpeakerAssignment(ctx, r.speakerAssignmentDomainToDao(assignment))
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("r.dao.InsertSpeakerAssignment -> %w", err)
	}

	return r.speakerAssignmentDaoToDomain(created), nil
}

func (r *EventRepository) GetSpeakerAssignmentByID(ctx context.Context, id uint) (domain.SpeakerAssignment, error) {
	assignment, err := r.dao.GetSpeakerAssignmentByID(ctx, id)
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("r.dao.GetSpeakerAssignmentByID -> %w", err)
	}

	return r.speakerAssignmentDaoToDomain(assignment), nil
}

func (r *EventRepository) UpdateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error) {
	updated, err := r.dao.UpdateSpeakerAssignment(ctx, r.speakerAssignmentDomainToDao(assignment))
	if err != nil {
		return domain.SpeakerAssignment{}, fmt.Errorf("r.dao.UpdateSpeakerAssignment -> %w", err)
	}

	return r.speakerAssignmentDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteSpeakerAssignment(ctx context.Context, eventID, id uint) error {
	return r.dao.DeleteSpeakerAssignment(ctx, eventID, id)
}

func (r *EventRepository) CreateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	created, err := r.dao.InsertSession(ctx, r.sessionDomainToDao(session))
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("r.dao.InsertSession -> %w", err)
	}

	return r.sessionDaoToDomain(created), nil
}

func (r *EventRepository) GetSessionByID(ctx context.Context, id uint) (domain.SessionRecord, error) {
	session, err := r.dao.GetSessionByID(ctx, id)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("r.dao.GetSessionByID -> %w", err)
	}

	return r.sessionDaoToDomain(session), nil
}

func (r *EventRepository) UpdateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error) {
	updated, err := r.dao.UpdateSession(ctx, r.sessionDomainToDao(session))
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("r.dao.UpdateSession -> %w", err)
	}

	return r.sessionDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteSession(ctx context.Context, eventID, id uint) error {
	return r.dao.DeleteSession(ctx, eventID, id)
}

func (r *EventRepository) ListSessionsByEventID(ctx context.Context, eventID uint) ([]domain.SessionRecord, error) {
	sessions, err := r.dao.ListSessionsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSessionsByEventID -> %w", err)
	}

	result := make([]domain.SessionRecord, len(sessions))
	for i, s := range sessions {
		result[i] = r.sessionDaoToDomain(s)
	}

	return result, nil
}

func (r *EventRepository) CreateSponsorAssignment(ctx context.Context, assignment domain.SponsorAssignment) (domain.SponsorAssignment, error) {
	created, err := r.dao.InsertSponsorAssignment(ctx, r.sponsorAssignmentDomainToDao(assignment))
	if err != nil {
		return domain.SponsorAssignment{}, fmt.Errorf("r.dao.InsertSponsorAssignment -> %w", err)
	}

	return r.sponsorAssignmentDaoToDomain(created), nil
}

func (r *EventRepository) DeleteSponsorAssignment(ctx context.Context, eventID, id uint) error {
	return r.dao.DeleteSponsorAssignment(ctx, eventID, id)
}

func (r *EventRepository) CreatePricingCategory(ctx context.Context, category domain.PricingCategory) (domain.PricingCategory, error) {
	created, err := r.dao.InsertPricingCategory(ctx, r.categoryDomainToDao(category))
	if err != nil {
		return domain.PricingCategory{}, fmt.Errorf("r.dao.InsertPricingCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *EventRepository) GetPricingCategoryByID(ctx context.Context, id uint) (domain.PricingCategory, error) {
	category, err := r.dao.GetPricingCategoryByID(ctx, id)
	if err != nil {
		return domain.PricingCategory{}, fmt.Errorf("r.dao.GetPricingCategoryByID -> %w", err)
	}

	return r.categoryDaoToDomain(category), nil
}
