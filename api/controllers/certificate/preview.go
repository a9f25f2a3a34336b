package certificate_controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/internal/certify"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Preview renders certificate HTML without persisting a record or sending
// mail. With ?dummy=true it uses stand-in data so a design can be checked
// before the event has attendees.
func Preview(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")
	dummy := c.Query("dummy") == "true"

	if !dummy {
		event, err := eventmodel.NewEventRepository(common.Gorm).GetById(eventId)
		if err != nil {
			return response.SendInternalError(c, err)
		}
		if event == nil {
			return response.SendNotFound(c, "Event not found")
		}
		if !event.CanEdit(userId) {
			return response.SendForbidden(c, "Only event admins can preview certificates")
		}
	}

	req := certify.PreviewRequest{
		EventID: eventId,
		UserID:  c.Query("user_id", userId),
		Dummy:   dummy,
	}
	if templateId, err := strconv.Atoi(c.Query("template_id")); err == nil {
		req.TemplateID = templateId
	}

	// Any other query param is a placeholder override, the request layer
	// sitting above stored settings in the merge.
	for key, value := range c.Queries() {
		switch key {
		case "dummy", "format", "template_id", "user_id":
			continue
		}
		if req.CustomFields == nil {
			req.CustomFields = make(map[string]string)
		}
		req.CustomFields[key] = value
	}

	html, certificateId, err := service.Preview(req)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	if c.Query("format") == "html" {
		c.Set("Content-Type", fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(html)
	}

	return response.SendSuccess(c, "Preview rendered", fiber.Map{
		"certificate_id": certificateId,
		"html":           html,
	})
}
