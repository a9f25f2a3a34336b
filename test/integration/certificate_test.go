package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certificatemodel "github.com/harnoor-dev/event-cert-api/api/model/certificateModel"
	"github.com/harnoor-dev/event-cert-api/test/helpers"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

func TestCertificate_PublicIdIsUnique(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := certificatemodel.NewCertificateRepository(db)
	helpers.SeedUsers(t, db, 2)
	event := helpers.SeedEvent(t, db, "evt-certid", "user-1")

	err := repo.Create(&model.Certificate{
		CertificateID: "CERT-20260115-01-0001",
		EventID:       event.ID,
		UserID:        "user-1",
		IssuedAt:      time.Now(),
	})
	require.NoError(t, err)

	taken, err := repo.ExistsByCertificateId("CERT-20260115-01-0001")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsByCertificateId("CERT-20260115-01-0002")
	require.NoError(t, err)
	assert.False(t, free)

	// The unique index rejects a second row with the same public id
	err = repo.Create(&model.Certificate{
		CertificateID: "CERT-20260115-01-0001",
		EventID:       event.ID,
		UserID:        "user-2",
		IssuedAt:      time.Now(),
	})
	require.Error(t, err)
}

func TestCertificate_VerificationLookupLoadsRecipient(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := certificatemodel.NewCertificateRepository(db)
	helpers.SeedUsers(t, db, 1)
	event := helpers.SeedEvent(t, db, "evt-verify", "user-1")

	require.NoError(t, repo.Create(&model.Certificate{
		CertificateID:  "CERT-20260115-02-0042",
		EventID:        event.ID,
		UserID:         "user-1",
		IssuedAt:       time.Now(),
		DeliveryStatus: model.DeliverySent,
	}))

	cert, err := repo.GetByCertificateId("CERT-20260115-02-0042")
	require.NoError(t, err)
	require.NotNil(t, cert)
	require.NotNil(t, cert.User)
	assert.Equal(t, "user-1@example.com", cert.User.Email)

	unknown, err := repo.GetByCertificateId("CERT-00000000-00-0000")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestCertificate_StatsAndRetryLists(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := certificatemodel.NewCertificateRepository(db)
	helpers.SeedUsers(t, db, 4)
	event := helpers.SeedEvent(t, db, "evt-stats", "user-1")

	seed := []*model.Certificate{
		{CertificateID: "CERT-20260115-03-0001", EventID: event.ID, UserID: "user-1", DeliveryStatus: model.DeliverySent},
		{CertificateID: "CERT-20260115-03-0002", EventID: event.ID, UserID: "user-2", DeliveryStatus: model.DeliverySent},
		{CertificateID: "CERT-20260115-03-0003", EventID: event.ID, UserID: "user-3", DeliveryStatus: model.DeliveryFailed, RetryCount: 1},
		{CertificateID: "CERT-20260115-03-0004", EventID: event.ID, UserID: "user-4", DeliveryStatus: model.DeliveryFailed, RetryCount: 3},
	}
	for _, cert := range seed {
		cert.IssuedAt = time.Now()
		require.NoError(t, repo.Create(cert))
	}

	stats, err := repo.StatsByEvent(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Sent)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(0), stats.Pending)
	assert.InDelta(t, 50.0, stats.SuccessRate, 0.01)

	// Only failures under the retry ceiling are eligible for resend
	retryable, err := repo.ListFailedForRetry(event.ID, 3)
	require.NoError(t, err)
	require.Len(t, retryable, 1)
	assert.Equal(t, "CERT-20260115-03-0003", retryable[0].CertificateID)
	require.NotNil(t, retryable[0].User)
}
