package certify

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/harnoor-dev/event-cert-api/common/metrics"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"github.com/skip2/go-qrcode"
)

const maxDeliveryRetries = 3

// EventStore is the event persistence surface the pipeline needs.
type EventStore interface {
	GetById(eventId string) (*model.Event, error)
	MarkCertificatesSent(eventId string, at time.Time) error
	ListAutoSendPending(now time.Time) ([]*model.Event, error)
	ClaimForProcessing(eventId string, at time.Time) (bool, error)
}

type AttendanceStore interface {
	ListPresentWithUsers(eventId string) ([]*model.Attendance, error)
}

type CertificateStore interface {
	GetByEventAndUser(eventId string, userId string) (*model.Certificate, error)
	ExistsByCertificateId(certificateId string) (bool, error)
	Create(cert *model.Certificate) error
	Save(cert *model.Certificate) error
	ListFailedForRetry(eventId string, maxRetries int) ([]*model.Certificate, error)
}

type SettingsStore interface {
	// GetByEvent returns nil without error when no settings exist yet.
	GetByEvent(eventId string) (*model.CertificateSetting, error)
}

type UserStore interface {
	GetById(userId string) (*model.User, error)
}

// PDFRenderer converts rendered certificate HTML into PDF bytes,
// optionally persisting to outputPath.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string, outputPath string) ([]byte, error)
}

// Mailer delivers one certificate email with its PDF attachment.
type Mailer interface {
	SendCertificate(req SendRequest) error
}

// Options controls one batch run.
type Options struct {
	SendEmail       bool
	SavePDF         bool
	ForceRegenerate bool
}

// AttendeeResult is the per-attendee outcome inside a batch summary.
type AttendeeResult struct {
	UserID          string `json:"user_id"`
	ParticipantName string `json:"participant_name,omitempty"`
	Status          string `json:"status"`
	DeliveryStatus  string `json:"delivery_status,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// BatchResult summarizes a full orchestrator run for one event.
type BatchResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Total   int              `json:"total"`
	Results []AttendeeResult `json:"results"`
}

// ResendResult summarizes a resend-failed pass.
type ResendResult struct {
	Total   int              `json:"total"`
	Success int              `json:"success"`
	Results []AttendeeResult `json:"results"`
}

// PreviewRequest renders a certificate without persisting anything.
type PreviewRequest struct {
	EventID      string
	UserID       string
	TemplateID   int
	CustomFields map[string]string
	Dummy        bool
}

// Service drives certificate generation and delivery for events. All
// collaborators are injected so the batch logic is testable in isolation.
type Service struct {
	Events       EventStore
	Attendance   AttendanceStore
	Certificates CertificateStore
	Settings     SettingsStore
	Users        UserStore
	Templates    *TemplateStore
	Renderer     PDFRenderer
	Mailer       Mailer

	// OutputDir is the root for generated PDFs; files land under
	// OutputDir/<eventId>/<certificateId>.pdf.
	OutputDir string

	// VerifyHost builds the public verification URL embedded as a QR code.
	VerifyHost string

	// UploadPDF optionally stores a copy of the PDF in object storage and
	// returns its public URL. Nil disables uploading.
	UploadPDF func(ctx context.Context, eventId string, certificateId string, pdf []byte) (string, error)
}

// GenerateForEvent renders and optionally delivers certificates for every
// present attendee of the event. One bad record never aborts the batch;
// failures are recorded per attendee and the run continues.
func (s *Service) GenerateForEvent(ctx context.Context, eventId string, opts Options) (*BatchResult, error) {
	event, err := s.Events.GetById(eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventId)
	}

	attendances, err := s.Attendance.ListPresentWithUsers(eventId)
	if err != nil {
		return nil, err
	}

	if len(attendances) == 0 {
		return &BatchResult{Success: false, Message: "No present attendees found"}, nil
	}

	results := make([]AttendeeResult, 0, len(attendances))

	for _, attendance := range attendances {
		user := attendance.User
		if user == nil {
			continue
		}

		result := s.processAttendee(ctx, event, user, opts)
		results = append(results, result)
	}

	// The sent flag is one-shot: it is set after every run, even a run
	// with individual failures, so the scheduler never re-picks the event.
	if err := s.Events.MarkCertificatesSent(eventId, time.Now()); err != nil {
		slog.Error("Failed to mark event certificates sent", "error", err, "eventId", eventId)
	}

	return &BatchResult{
		Success: true,
		Total:   len(attendances),
		Results: results,
	}, nil
}

func (s *Service) processAttendee(ctx context.Context, event *model.Event, user *model.User, opts Options) AttendeeResult {
	result := AttendeeResult{
		UserID:          user.ID,
		ParticipantName: user.FullName(),
	}

	certRecord, err := s.Certificates.GetByEventAndUser(event.ID, user.ID)
	if err != nil {
		result.Status = "failed"
		result.Reason = err.Error()
		return result
	}

	if certRecord != nil && certRecord.DeliveryStatus == model.DeliverySent && !opts.ForceRegenerate {
		metrics.CertificatesSkipped.Inc()
		result.Status = "skipped"
		result.Reason = "Already sent"
		return result
	}

	existingId := ""
	if certRecord != nil {
		existingId = certRecord.CertificateID
	}

	html, certificateId, templateId, err := s.buildCertificateHTML(event, user, nil, existingId)
	if err != nil {
		slog.Error("Certificate render failed", "error", err, "eventId", event.ID, "userId", user.ID)
		result.Status = "failed"
		result.Reason = err.Error()
		return result
	}

	var pdfPath string
	var pdfBytes []byte
	if opts.SavePDF {
		pdfPath = filepath.Join(s.OutputDir, event.ID, certificateId+".pdf")
	}
	pdfBytes, err = s.Renderer.RenderPDF(ctx, html, pdfPath)
	if err != nil {
		slog.Error("PDF render failed", "error", err, "eventId", event.ID, "userId", user.ID)
		result.Status = "failed"
		result.Reason = err.Error()
		return result
	}
	metrics.CertificatesGenerated.Inc()

	pdfURL := ""
	if s.UploadPDF != nil {
		if url, uploadErr := s.UploadPDF(ctx, event.ID, certificateId, pdfBytes); uploadErr != nil {
			slog.Warn("Certificate upload to object storage failed", "error", uploadErr, "certificateId", certificateId)
		} else {
			pdfURL = url
		}
	}

	now := time.Now()
	if certRecord == nil {
		certRecord = &model.Certificate{
			CertificateID: certificateId,
			EventID:       event.ID,
			UserID:        user.ID,
			TemplateID:    templateId,
			IssuedAt:      now,
			PdfPath:       pdfPath,
			PdfURL:        pdfURL,
			Status:        model.CertStatusGenerated,
			DeliveryStatus: model.DeliveryPending,
		}
		if err := s.Certificates.Create(certRecord); err != nil {
			result.Status = "failed"
			result.Reason = err.Error()
			return result
		}
	} else {
		certRecord.TemplateID = templateId
		certRecord.PdfPath = pdfPath
		if pdfURL != "" {
			certRecord.PdfURL = pdfURL
		}
		certRecord.Status = model.CertStatusGenerated
		certRecord.DeliveryStatus = model.DeliveryPending
		if err := s.Certificates.Save(certRecord); err != nil {
			result.Status = "failed"
			result.Reason = err.Error()
			return result
		}
	}

	if !opts.SendEmail || user.Email == "" {
		result.Status = "success"
		result.DeliveryStatus = model.DeliveryPending
		return result
	}

	sendErr := s.Mailer.SendCertificate(SendRequest{
		To:              user.Email,
		ParticipantName: user.FullName(),
		EventName:       event.Title,
		CertificateID:   certificateId,
		PDFPath:         pdfPath,
		PDFBytes:        pdfBytes,
	})

	if sendErr != nil {
		metrics.CertificatesFailed.Inc()
		certRecord.DeliveryStatus = model.DeliveryFailed
		certRecord.FailureReason = sendErr.Error()
		certRecord.RetryCount++
		certRecord.LastAttemptAt = &now
		if err := s.Certificates.Save(certRecord); err != nil {
			slog.Error("Failed to record delivery failure", "error", err, "certificateId", certificateId)
		}
		result.Status = "failed"
		result.DeliveryStatus = model.DeliveryFailed
		result.Reason = sendErr.Error()
		return result
	}

	metrics.CertificatesSent.Inc()
	certRecord.EmailSent = true
	certRecord.EmailSentAt = &now
	certRecord.Status = model.CertStatusSent
	certRecord.DeliveryStatus = model.DeliverySent
	if err := s.Certificates.Save(certRecord); err != nil {
		slog.Error("Failed to record delivery success", "error", err, "certificateId", certificateId)
	}

	result.Status = "success"
	result.DeliveryStatus = model.DeliverySent
	return result
}

// buildCertificateHTML resolves settings, loads the template, and fills
// every placeholder for one participant. When existingId is empty a fresh
// unique certificate id is allocated.
func (s *Service) buildCertificateHTML(event *model.Event, user *model.User, overrides map[string]string, existingId string) (string, string, int, error) {
	settings, err := s.Settings.GetByEvent(event.ID)
	if err != nil {
		return "", "", 0, err
	}

	cfg := ResolveSettings(settings, overrides)

	raw, err := s.Templates.Load(cfg.TemplateID)
	if err != nil {
		return "", "", 0, err
	}

	certificateId := existingId
	if certificateId == "" {
		certificateId, err = GenerateUniqueID(event.EventDate, s.Certificates.ExistsByCertificateId)
		if err != nil {
			return "", "", 0, err
		}
	}

	eventDate := ""
	if !event.EventDate.IsZero() {
		eventDate = event.EventDate.Format("02 January 2006")
	}

	department := user.Department
	if department == "" {
		department = event.Department
	}

	organiser := event.OrganiserName
	if organiser == "" {
		organiser = cfg.Signatures[3].Name
	}

	tokens := cfg.Placeholders()
	tokens["eventTitle"] = event.Title
	tokens["organiserName"] = organiser
	tokens["department"] = department
	tokens["venue"] = event.Venue
	tokens["eventDate"] = eventDate
	tokens["participantName"] = user.FullName()
	tokens["certificateId"] = certificateId
	tokens["issuedDate"] = time.Now().Format("02 January 2006")
	tokens["qrCodeDataUrl"] = s.verificationQR(certificateId)

	for key, value := range cfg.CustomFields {
		tokens[key] = value
	}

	return FillPlaceholders(raw, tokens), certificateId, cfg.TemplateID, nil
}

// verificationQR encodes the public verify URL as a PNG data URL, or ""
// when QR generation is unavailable.
func (s *Service) verificationQR(certificateId string) string {
	if s.VerifyHost == "" {
		return ""
	}
	verifyURL := fmt.Sprintf("%s/certificates/verify/%s", s.VerifyHost, certificateId)
	png, err := qrcode.Encode(verifyURL, qrcode.Medium, 100)
	if err != nil {
		slog.Warn("QR code generation failed", "error", err, "certificateId", certificateId)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// Preview renders certificate HTML without touching certificate records.
// With Dummy set it uses stand-in event and participant data.
func (s *Service) Preview(req PreviewRequest) (string, string, error) {
	overrides := map[string]string{}
	for key, value := range req.CustomFields {
		overrides[key] = value
	}
	if req.TemplateID != 0 {
		overrides["templateId"] = fmt.Sprintf("%d", req.TemplateID)
	}

	var event *model.Event
	var user *model.User

	if req.Dummy {
		event = &model.Event{
			Title:         "AI Innovation Summit 2026",
			EventDate:     time.Now(),
			Venue:         "Main Auditorium",
			OrganiserName: "Tech Committee",
			Department:    "Computer Science",
		}
		user = &model.User{
			FirstName:  "John",
			LastName:   "Doe",
			Department: "B.Tech CSE",
		}
	} else {
		var err error
		event, err = s.Events.GetById(req.EventID)
		if err != nil {
			return "", "", err
		}
		if event == nil {
			return "", "", fmt.Errorf("event %s not found", req.EventID)
		}
		user, err = s.Users.GetById(req.UserID)
		if err != nil {
			return "", "", err
		}
		if user == nil {
			return "", "", fmt.Errorf("user %s not found", req.UserID)
		}
	}

	html, certificateId, _, err := s.buildCertificateHTML(event, user, overrides, "")
	if err != nil {
		return "", "", err
	}
	return html, certificateId, nil
}

// ResendSingle re-sends one existing certificate, regenerating the PDF
// first when the file has gone missing from disk.
func (s *Service) ResendSingle(ctx context.Context, eventId string, userId string) error {
	cert, err := s.Certificates.GetByEventAndUser(eventId, userId)
	if err != nil {
		return err
	}
	if cert == nil {
		return fmt.Errorf("certificate not found, generate it first")
	}

	user, err := s.Users.GetById(userId)
	if err != nil {
		return err
	}
	event, err := s.Events.GetById(eventId)
	if err != nil {
		return err
	}
	if user == nil || event == nil {
		return fmt.Errorf("user or event missing")
	}

	pdfPath := cert.PdfPath
	if pdfPath == "" {
		pdfPath = filepath.Join(s.OutputDir, eventId, cert.CertificateID+".pdf")
	}

	var pdfBytes []byte
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		html, _, _, buildErr := s.buildCertificateHTML(event, user, nil, cert.CertificateID)
		if buildErr != nil {
			return buildErr
		}
		pdfBytes, err = s.Renderer.RenderPDF(ctx, html, pdfPath)
		if err != nil {
			return err
		}
		cert.PdfPath = pdfPath
	}

	now := time.Now()
	sendErr := s.Mailer.SendCertificate(SendRequest{
		To:              user.Email,
		ParticipantName: user.FullName(),
		EventName:       event.Title,
		CertificateID:   cert.CertificateID,
		PDFPath:         pdfPath,
		PDFBytes:        pdfBytes,
	})

	if sendErr != nil {
		metrics.CertificatesFailed.Inc()
		cert.DeliveryStatus = model.DeliveryFailed
		cert.FailureReason = sendErr.Error()
		cert.RetryCount++
		cert.LastAttemptAt = &now
		if err := s.Certificates.Save(cert); err != nil {
			slog.Error("Failed to record resend failure", "error", err, "certificateId", cert.CertificateID)
		}
		return sendErr
	}

	metrics.CertificatesSent.Inc()
	cert.DeliveryStatus = model.DeliverySent
	cert.EmailSent = true
	cert.EmailSentAt = &now
	cert.Status = model.CertStatusSent
	return s.Certificates.Save(cert)
}

// ResendFailed re-attempts every failed delivery for an event whose retry
// count is still under the ceiling. Records at the ceiling stay untouched
// until an operator forces regeneration.
func (s *Service) ResendFailed(ctx context.Context, eventId string) (*ResendResult, error) {
	failed, err := s.Certificates.ListFailedForRetry(eventId, maxDeliveryRetries)
	if err != nil {
		return nil, err
	}

	event, err := s.Events.GetById(eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventId)
	}

	result := &ResendResult{Total: len(failed)}

	for _, cert := range failed {
		user := cert.User
		if user == nil {
			user, err = s.Users.GetById(cert.UserID)
			if err != nil || user == nil {
				result.Results = append(result.Results, AttendeeResult{
					UserID: cert.UserID,
					Status: "failed",
					Reason: "user not found",
				})
				continue
			}
		}

		now := time.Now()
		sendErr := s.Mailer.SendCertificate(SendRequest{
			To:              user.Email,
			ParticipantName: user.FullName(),
			EventName:       event.Title,
			CertificateID:   cert.CertificateID,
			PDFPath:         cert.PdfPath,
		})

		if sendErr != nil {
			metrics.CertificatesFailed.Inc()
			cert.RetryCount++
			cert.LastAttemptAt = &now
			cert.FailureReason = sendErr.Error()
			if err := s.Certificates.Save(cert); err != nil {
				slog.Error("Failed to record retry failure", "error", err, "certificateId", cert.CertificateID)
			}
			result.Results = append(result.Results, AttendeeResult{
				UserID: cert.UserID,
				Status: "failed",
				Reason: sendErr.Error(),
			})
			continue
		}

		metrics.CertificatesSent.Inc()
		cert.DeliveryStatus = model.DeliverySent
		cert.EmailSent = true
		cert.EmailSentAt = &now
		cert.Status = model.CertStatusSent
		if err := s.Certificates.Save(cert); err != nil {
			slog.Error("Failed to record retry success", "error", err, "certificateId", cert.CertificateID)
		}
		result.Success++
		result.Results = append(result.Results, AttendeeResult{
			UserID: cert.UserID,
			Status: "success",
		})
	}

	return result, nil
}
