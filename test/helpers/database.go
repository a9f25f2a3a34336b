package helpers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

// PostgresContainer holds the test database container
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *gorm.DB
	ConnStr   string
}

// SetupTestDatabase creates a PostgreSQL container with the full schema
// migrated and returns a GORM connection to it
func SetupTestDatabase(t *testing.T) *PostgresContainer {
	ctx := context.Background()

	pgContainer, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgrescontainer.WithDatabase("test_eventcert"),
		postgrescontainer.WithUsername("test"),
		postgrescontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		new(model.User),
		new(model.Event),
		new(model.Attendance),
		new(model.CertificateSetting),
		new(model.Certificate),
		new(model.GalleryImage),
	)
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	return &PostgresContainer{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}
}

// GetTestDB returns a DB transaction that auto-rollbacks for test isolation
func GetTestDB(t *testing.T, container *PostgresContainer) *gorm.DB {
	tx := container.DB.Begin()
	require.NoError(t, tx.Error, "Failed to begin transaction")

	t.Cleanup(func() {
		tx.Rollback()
	})

	return tx
}

// SeedUsers inserts n users named u1..un with matching emails
func SeedUsers(t *testing.T, db *gorm.DB, n int) []*model.User {
	users := make([]*model.User, 0, n)
	for i := 1; i <= n; i++ {
		user := &model.User{
			ID:        userID(i),
			FirstName: "User",
			LastName:  userID(i),
			Email:     userID(i) + "@example.com",
			Password:  "hashed",
		}
		require.NoError(t, db.Create(user).Error, "Failed to seed user")
		users = append(users, user)
	}
	return users
}

func userID(i int) string {
	return "user-" + string(rune('0'+i))
}

// SeedEvent inserts one event created by creatorId, dated a day in the past
// so certificate operations treat it as ended
func SeedEvent(t *testing.T, db *gorm.DB, id string, creatorId string) *model.Event {
	event := &model.Event{
		ID:            id,
		Title:         "Integration Test Event",
		Venue:         "Main Auditorium",
		OrganiserName: "CS Department",
		EventDate:     time.Now().Add(-24 * time.Hour),
		EventCode:     strings.ToUpper("TC-" + id),
		CreatedBy:     creatorId,
		IsActive:      true,
	}
	require.NoError(t, db.Create(event).Error, "Failed to seed event")
	return event
}
