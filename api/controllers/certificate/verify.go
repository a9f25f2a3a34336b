package certificate_controller

import (
	"github.com/gofiber/fiber/v2"
	certificatemodel "github.com/harnoor-dev/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Verify is the public verification endpoint behind the QR code on every
// certificate. An unknown id answers 404 with valid:false instead of an
// error so scans of forged codes get a clean negative.
func Verify(c *fiber.Ctx) error {
	certificateId := c.Params("certificateId")

	cert, err := certificatemodel.NewCertificateRepository(common.Gorm).GetByCertificateId(certificateId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"valid":   false,
			"message": "Certificate not found",
		})
	}

	participantName := ""
	if cert.User != nil {
		participantName = cert.User.FullName()
	}

	payload := fiber.Map{
		"valid":            true,
		"certificate_id":   cert.CertificateID,
		"participant_name": participantName,
		"issued_at":        cert.IssuedAt,
		"delivery_status":  cert.DeliveryStatus,
	}

	event, eventErr := eventmodel.NewEventRepository(common.Gorm).GetById(cert.EventID)
	if eventErr == nil && event != nil {
		payload["event_title"] = event.Title
		payload["event_date"] = event.EventDate
		payload["venue"] = event.Venue
		payload["department"] = event.Department
	}

	return response.SendSuccess(c, "Certificate verified", payload)
}
