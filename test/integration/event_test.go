package integration

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/test/helpers"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

func TestEvent_CreateGeneratesJoinCode(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 1)

	created, err := repo.Create(&model.Event{
		Title:         "Tech Symposium",
		Venue:         "Seminar Hall",
		OrganiserName: "IT Club",
		EventDate:     time.Now().Add(48 * time.Hour),
		CreatedBy:     "user-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Len(t, created.EventCode, 8)

	byCode, err := repo.GetByCode(created.EventCode)
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, created.ID, byCode.ID)

	// Lookup is case insensitive on the caller side
	lower, err := repo.GetByCode(strings.ToLower(created.EventCode))
	require.NoError(t, err)
	require.NotNil(t, lower)
	assert.Equal(t, created.ID, lower.ID)
}

func TestEvent_CoAdminRules(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 5)
	event := helpers.SeedEvent(t, db, "evt-coadmin", "user-1")

	require.ErrorIs(t, repo.AddCoAdmin(event.ID, "user-1"), eventmodel.ErrCreatorCoAdmin)

	require.NoError(t, repo.AddCoAdmin(event.ID, "user-2"))
	// Re-adding the same user is a no-op
	require.NoError(t, repo.AddCoAdmin(event.ID, "user-2"))
	require.NoError(t, repo.AddCoAdmin(event.ID, "user-3"))
	require.NoError(t, repo.AddCoAdmin(event.ID, "user-4"))

	require.ErrorIs(t, repo.AddCoAdmin(event.ID, "user-5"), eventmodel.ErrCoAdminLimit)

	loaded, err := repo.GetById(event.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.CoAdmins, 3)
	assert.True(t, loaded.IsCoAdmin("user-2"))

	require.NoError(t, repo.RemoveCoAdmin(event.ID, "user-2"))
	require.NoError(t, repo.AddCoAdmin(event.ID, "user-5"))
}

func TestEvent_AdminsCannotJoinAsParticipants(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 3)
	event := helpers.SeedEvent(t, db, "evt-admin-join", "user-1")

	require.NoError(t, repo.AddCoAdmin(event.ID, "user-2"))

	require.ErrorIs(t, repo.AddParticipant(event.ID, "user-1"), eventmodel.ErrAdminParticipant)
	require.ErrorIs(t, repo.AddParticipant(event.ID, "user-2"), eventmodel.ErrAdminParticipant)
	require.NoError(t, repo.AddParticipant(event.ID, "user-3"))

	loaded, err := repo.GetById(event.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Participants, 1)
	assert.Equal(t, "user-3", loaded.Participants[0].ID)
}

func TestEvent_ListVisibleRespectsPrivacy(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 3)

	public := helpers.SeedEvent(t, db, "evt-public", "user-1")
	public.Privacy = "public"
	require.NoError(t, db.Save(public).Error)

	private := helpers.SeedEvent(t, db, "evt-private", "user-1")
	private.Privacy = "private"
	require.NoError(t, db.Save(private).Error)

	joined := helpers.SeedEvent(t, db, "evt-joined", "user-3")
	joined.Privacy = "private"
	require.NoError(t, db.Save(joined).Error)
	require.NoError(t, repo.AddParticipant(joined.ID, "user-2"))

	visible, err := repo.ListVisible("user-2")
	require.NoError(t, err)

	ids := make([]string, 0, len(visible))
	for _, e := range visible {
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, "evt-public")
	assert.Contains(t, ids, "evt-joined")
	assert.NotContains(t, ids, "evt-private")

	creatorView, err := repo.ListVisible("user-1")
	require.NoError(t, err)
	creatorIds := make([]string, 0, len(creatorView))
	for _, e := range creatorView {
		creatorIds = append(creatorIds, e.ID)
	}
	assert.Contains(t, creatorIds, "evt-private")
}

func TestEvent_ProcessingClaimIsExclusive(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 1)
	event := helpers.SeedEvent(t, db, "evt-claim", "user-1")
	event.AutoSendAfterEventEnd = true
	require.NoError(t, db.Save(event).Error)

	now := time.Now()

	claimed, err := repo.ClaimForProcessing(event.ID, now)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim while the first is fresh must fail
	again, err := repo.ClaimForProcessing(event.ID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, again)

	// A claim older than an hour is treated as abandoned
	stale, err := repo.ClaimForProcessing(event.ID, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, stale)

	require.NoError(t, repo.MarkCertificatesSent(event.ID, now))

	// Completed events can never be claimed again
	after, err := repo.ClaimForProcessing(event.ID, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, after)

	loaded, err := repo.GetById(event.ID)
	require.NoError(t, err)
	assert.True(t, loaded.CertificatesSent)
	assert.NotNil(t, loaded.CertificatesSentAt)
	assert.Nil(t, loaded.ProcessingStartedAt)
}

func TestEvent_ListAutoSendPending(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := eventmodel.NewEventRepository(db)
	helpers.SeedUsers(t, db, 1)

	due := helpers.SeedEvent(t, db, "evt-due", "user-1")
	due.AutoSendAfterEventEnd = true
	require.NoError(t, db.Save(due).Error)

	manual := helpers.SeedEvent(t, db, "evt-manual", "user-1")
	require.NoError(t, db.Save(manual).Error)

	upcoming := helpers.SeedEvent(t, db, "evt-upcoming", "user-1")
	upcoming.AutoSendAfterEventEnd = true
	upcoming.EventDate = time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Save(upcoming).Error)

	done := helpers.SeedEvent(t, db, "evt-done", "user-1")
	done.AutoSendAfterEventEnd = true
	done.CertificatesSent = true
	require.NoError(t, db.Save(done).Error)

	pending, err := repo.ListAutoSendPending(time.Now())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "evt-due", pending[0].ID)
}
