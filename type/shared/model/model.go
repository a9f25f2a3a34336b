package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID         string `gorm:"primaryKey" json:"id"`
	FirstName  string `gorm:"not null" json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `json:"-"`
	Department string `json:"department"`
	About      string `json:"about"`
	AvatarURL  string `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName joins first and last name, falling back to "Participant"
// so a certificate never renders an empty recipient line.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return "Participant"
	}
	return name
}

type Event struct {
	ID                    string  `gorm:"primaryKey" json:"id"`
	Title                 string  `gorm:"not null" json:"title"`
	Description           string  `json:"description"`
	Venue                 string  `gorm:"not null" json:"venue"`
	Department            string  `json:"department"`
	OrganiserName         string  `gorm:"not null" json:"organiser_name"`
	PosterURL             string  `json:"poster_url"`
	EventDate             time.Time  `gorm:"not null;index" json:"event_date"`
	ExpiryDate            *time.Time `json:"expiry_date"`
	Privacy               string  `gorm:"default:public" json:"privacy"`
	IsActive              bool    `gorm:"default:true" json:"is_active"`
	EventCode             string  `gorm:"uniqueIndex" json:"event_code"`
	AttendeeUploadEnabled bool    `gorm:"default:false" json:"attendee_upload_enabled"`
	CreatedBy             string  `gorm:"not null;index" json:"created_by"`
	CoAdmins              []*User `gorm:"many2many:event_co_admins" json:"co_admins,omitempty"`
	Participants          []*User `gorm:"many2many:event_participants" json:"participants,omitempty"`
	AutoSendAfterEventEnd bool    `gorm:"default:false" json:"auto_send_after_event_end"`
	CertificatesSent      bool    `gorm:"default:false;index" json:"certificates_sent"`
	CertificatesSentAt    *time.Time `json:"certificates_sent_at"`
	// Claim marker taken by the scheduler before a run so two instances
	// cannot double-process the same event.
	ProcessingStartedAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsCoAdmin reports whether userId is one of the event co-administrators.
func (e *Event) IsCoAdmin(userId string) bool {
	for _, admin := range e.CoAdmins {
		if admin != nil && admin.ID == userId {
			return true
		}
	}
	return false
}

// IsParticipant reports whether userId has joined the event.
func (e *Event) IsParticipant(userId string) bool {
	for _, p := range e.Participants {
		if p != nil && p.ID == userId {
			return true
		}
	}
	return false
}

// CanEdit reports whether userId may manage the event.
func (e *Event) CanEdit(userId string) bool {
	return e.CreatedBy == userId || e.IsCoAdmin(userId)
}

type Attendance struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"event_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string    `gorm:"default:present" json:"status"`
	MarkedAt  time.Time `json:"marked_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignatureSlot is one named signature applied to a certificate design.
type SignatureSlot struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

type CertificateSetting struct {
	ID                    string                              `gorm:"primaryKey" json:"id"`
	EventID               string                              `gorm:"uniqueIndex;not null" json:"event_id"`
	TemplateID            int                                 `gorm:"default:1" json:"template_id"`
	LogoLeft              string                              `json:"logo_left"`
	LogoRight             string                              `json:"logo_right"`
	Signatures            datatypes.JSONSlice[SignatureSlot]  `json:"signatures"`
	CustomFields          datatypes.JSONType[map[string]string] `json:"custom_fields"`
	AutoSendAfterEventEnd bool                                `gorm:"default:false" json:"auto_send_after_event_end"`
	CreatedAt             time.Time                           `json:"created_at"`
	UpdatedAt             time.Time                           `json:"updated_at"`
}

type Certificate struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	CertificateID string     `gorm:"uniqueIndex;not null" json:"certificate_id"`
	EventID       string     `gorm:"not null;uniqueIndex:idx_certificate_event_user" json:"event_id"`
	UserID        string     `gorm:"not null;uniqueIndex:idx_certificate_event_user" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TemplateID    int        `gorm:"default:1" json:"template_id"`
	IssuedAt      time.Time  `json:"issued_at"`
	PdfPath       string     `json:"pdf_path"`
	PdfURL        string     `json:"pdf_url"`
	EmailSent     bool       `gorm:"default:false" json:"email_sent"`
	EmailSentAt   *time.Time `json:"email_sent_at"`
	Status        string     `gorm:"default:generated" json:"status"`
	DeliveryStatus string    `gorm:"default:pending;index" json:"delivery_status"`
	FailureReason string     `json:"failure_reason"`
	RetryCount    int        `gorm:"default:0" json:"retry_count"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type GalleryImage struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"not null;index" json:"event_id"`
	UploaderID string    `gorm:"not null" json:"uploader_id"`
	ImageURL   string    `gorm:"not null" json:"image_url"`
	ObjectKey  string    `json:"object_key"`
	Caption    string    `json:"caption"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
