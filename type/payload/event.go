package payload

type CreateEventPayload struct {
	Title                 string `json:"title" validate:"required,max=100"`
	Description           string `json:"description" validate:"max=2000"`
	Venue                 string `json:"venue" validate:"required"`
	Department            string `json:"department"`
	OrganiserName         string `json:"organiser_name" validate:"required"`
	EventDate             string `json:"event_date" validate:"required"`
	ExpiryDate            string `json:"expiry_date"`
	Privacy               string `json:"privacy" validate:"omitempty,oneof=public private"`
	AttendeeUploadEnabled bool   `json:"attendee_upload_enabled"`
	AutoSendAfterEventEnd bool   `json:"auto_send_after_event_end"`
}

type UpdateEventPayload struct {
	Title                 string `json:"title" validate:"omitempty,max=100"`
	Description           string `json:"description" validate:"omitempty,max=2000"`
	Venue                 string `json:"venue"`
	Department            string `json:"department"`
	OrganiserName         string `json:"organiser_name"`
	EventDate             string `json:"event_date"`
	ExpiryDate            string `json:"expiry_date"`
	Privacy               string `json:"privacy" validate:"omitempty,oneof=public private"`
	AttendeeUploadEnabled *bool  `json:"attendee_upload_enabled"`
	AutoSendAfterEventEnd *bool  `json:"auto_send_after_event_end"`
	IsActive              *bool  `json:"is_active"`
}

type MarkAttendancePayload struct {
	Status string `json:"status" validate:"omitempty,oneof=present late excused"`
}
