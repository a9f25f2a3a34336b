package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certificate_controller "github.com/harnoor-dev/event-cert-api/api/controllers/certificate"
	event_controller "github.com/harnoor-dev/event-cert-api/api/controllers/event"
	certificatemodel "github.com/harnoor-dev/event-cert-api/api/model/certificateModel"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/test/helpers"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// newHandlerApp points the shared DB handle at the test transaction and
// registers the routes under test. asUser injects the authenticated user
// the way the auth middleware would.
func newHandlerApp(t *testing.T, db *gorm.DB, asUser string) *fiber.App {
	prev := common.Gorm
	common.Gorm = db
	t.Cleanup(func() { common.Gorm = prev })

	app := fiber.New()

	app.Get("/api/certificates/verify/:certificateId", certificate_controller.Verify)

	app.Post("/api/events/:eventId/join", func(c *fiber.Ctx) error {
		c.Locals("user_id", asUser)
		return c.Next()
	}, event_controller.Join)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method string, target string) (int, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestVerifyHandler_UnknownCertificateAnswersNotFoundInvalid(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	app := newHandlerApp(t, db, "")

	status, body := doRequest(t, app, http.MethodGet, "/api/certificates/verify/CERT-00000000-00-0000")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Certificate not found", body["message"])
}

func TestVerifyHandler_KnownCertificateReturnsEventDetails(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	helpers.SeedUsers(t, db, 1)
	event := helpers.SeedEvent(t, db, "evt-verify-http", "user-1")
	event.Department = "Computer Science"
	require.NoError(t, db.Save(event).Error)

	require.NoError(t, certificatemodel.NewCertificateRepository(db).Create(&model.Certificate{
		CertificateID:  "CERT-20260115-04-0007",
		EventID:        event.ID,
		UserID:         "user-1",
		IssuedAt:       time.Now(),
		DeliveryStatus: model.DeliverySent,
	}))

	app := newHandlerApp(t, db, "")
	status, body := doRequest(t, app, http.MethodGet, "/api/certificates/verify/CERT-20260115-04-0007")

	require.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "CERT-20260115-04-0007", data["certificate_id"])
	assert.Equal(t, event.Title, data["event_title"])
	assert.Equal(t, event.Venue, data["venue"])
	assert.Equal(t, "Computer Science", data["department"])
	assert.NotEmpty(t, data["event_date"])
	assert.NotEmpty(t, data["participant_name"])
}

func TestJoinHandler_PrivateEventRequiresJoinCode(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	helpers.SeedUsers(t, db, 2)

	event := helpers.SeedEvent(t, db, "evt-private-join", "user-1")
	event.Privacy = "private"
	event.EventDate = time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Save(event).Error)

	app := newHandlerApp(t, db, "user-2")

	// Guessing the id of a private event is not enough to join it.
	status, body := doRequest(t, app, http.MethodPost, "/api/events/"+event.ID+"/join")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])

	// The join code works.
	status, _ = doRequest(t, app, http.MethodPost, "/api/events/"+event.EventCode+"/join")
	assert.Equal(t, http.StatusOK, status)
}
