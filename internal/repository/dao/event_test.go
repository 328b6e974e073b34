package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		os.Exit(0)
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=test",
			"POSTGRES_DB=icms_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=secret dbname=icms_test", resource.GetPort("5432/tcp"))
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		testDB = db

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %v", err)
	}

	os.Exit(code)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func seedSpeaker(t *testing.T) Speaker {
	t.Helper()

	speaker, err := NewSpeakerDAO(testDB).Insert(context.Background(), Speaker{
		Name:      "Dr. Test Speaker",
		Specialty: "Cardiology",
	})
	require.NoError(t, err)

	return speaker
}

func TestEventDAO_InsertAggregate(t *testing.T) {
	ctx := context.Background()
	d := NewEventDAO(testDB)
	speaker := seedSpeaker(t)

	aggregate, err := d.InsertAggregate(ctx,
		Event{
			TenantID:  1,
			Title:     "Insert Aggregate Summit",
			Slug:      "insert-aggregate-summit",
			StartDate: datePtr(2026, time.March, 10),
			EndDate:   datePtr(2026, time.March, 12),
			Status:    "DRAFT",
		},
		[]PricingCategory{
			{Name: "Late entry", Slots: 10, Price: 300, DisplayOrder: 2},
			{Name: "Early entry", Slots: 20, Price: 200, DisplayOrder: 1},
		},
		[]SpeakerAssignment{
			{SpeakerID: speaker.ID, Topic: "Opening", SessionOrder: 1, Status: "pending"},
		},
		[]SessionRecord{
			{Title: "Workshop", SessionDate: datePtr(2026, time.March, 11), SessionOrder: 2, Status: "scheduled"},
			{Title: "Keynote", SessionDate: datePtr(2026, time.March, 10), SessionOrder: 1, Status: "scheduled"},
		},
		[]SponsorAssignment{},
	)
	require.NoError(t, err)

	assert.NotZero(t, aggregate.Event.ID)
	assert.Equal(t, int64(0), aggregate.RegistrationCount)

	// Dependents come back keyed to the new event and ordered for
	// display, not in insert order.
	require.Len(t, aggregate.PricingCategories, 2)
	assert.Equal(t, "Early entry", aggregate.PricingCategories[0].Name)
	assert.Equal(t, aggregate.Event.ID, aggregate.PricingCategories[0].EventID)

	require.Len(t, aggregate.EventSessions, 2)
	assert.Equal(t, "Keynote", aggregate.EventSessions[0].Title)

	require.Len(t, aggregate.EventSpeakers, 1)
	assert.Equal(t, speaker.ID, aggregate.EventSpeakers[0].SpeakerID)
	assert.Equal(t, "Dr. Test Speaker", aggregate.EventSpeakers[0].Speaker.Name)

	// The re-read matches a fresh read outside the transaction.
	reread, err := d.GetAggregateByID(ctx, aggregate.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, aggregate.Event.Slug, reread.Event.Slug)
	assert.Len(t, reread.PricingCategories, 2)
}

func TestEventDAO_InsertAggregate_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	d := NewEventDAO(testDB)

	_, err := d.Insert(ctx, Event{TenantID: 1, Title: "First", Slug: "taken-slug", Status: "DRAFT"})
	require.NoError(t, err)

	_, err = d.InsertAggregate(ctx,
		Event{TenantID: 1, Title: "Second", Slug: "taken-slug", Status: "DRAFT"},
		[]PricingCategory{{Name: "Standard", Slots: 5, Price: 100}},
		nil, nil, nil,
	)
	assert.ErrorIs(t, err, ErrSlugExists)

	// Nothing of the failed aggregate persisted.
	var categories int64
	require.NoError(t, testDB.Model(&PricingCategory{}).Where("name = ?", "Standard").Count(&categories).Error)
	assert.Zero(t, categories)
}

func TestEventDAO_InsertAggregate_DependentFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	d := NewEventDAO(testDB)

	// A speaker assignment pointing at a speaker that does not exist
	// violates the foreign key, which must roll back the event row
	// inserted moments earlier in the same transaction.
	_, err := d.InsertAggregate(ctx,
		Event{TenantID: 1, Title: "Rollback Summit", Slug: "rollback-summit", Status: "DRAFT"},
		[]PricingCategory{{Name: "Rollback entry", Slots: 5, Price: 100}},
		[]SpeakerAssignment{{SpeakerID: 999999, Topic: "Ghost talk", Status: "pending"}},
		nil, nil,
	)
	require.Error(t, err)

	var events int64
	require.NoError(t, testDB.Model(&Event{}).Where("slug = ?", "rollback-summit").Count(&events).Error)
	assert.Zero(t, events)

	var categories int64
	require.NoError(t, testDB.Model(&PricingCategory{}).Where("name = ?", "Rollback entry").Count(&categories).Error)
	assert.Zero(t, categories)
}

func TestEventDAO_Delete(t *testing.T) {
	ctx := context.Background()
	d := NewEventDAO(testDB)

	created, err := d.Insert(ctx, Event{TenantID: 1, Title: "Doomed", Slug: "doomed-event", Status: "DRAFT"})
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, created.ID))
	assert.ErrorIs(t, d.Delete(ctx, created.ID), ErrEventNotFound)

	_, err = d.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegistrationDAO_UniquePerEventAndUser(t *testing.T) {
	ctx := context.Background()
	eventDAO := NewEventDAO(testDB)
	regDAO := NewRegistrationDAO(testDB)

	event, err := eventDAO.Insert(ctx, Event{TenantID: 1, Title: "Reg Event", Slug: "reg-event", Status: "PUBLISHED"})
	require.NoError(t, err)

	user := User{Email: "reg-test@example.com", Password: "hash", Name: "Reg Tester", Role: "attendee"}
	require.NoError(t, testDB.Create(&user).Error)

	_, err = regDAO.Insert(ctx, Registration{EventID: event.ID, UserID: user.ID, PricingCategoryID: 1, PaymentStatus: "pending"})
	require.NoError(t, err)

	_, err = regDAO.Insert(ctx, Registration{EventID: event.ID, UserID: user.ID, PricingCategoryID: 1, PaymentStatus: "pending"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}
