package certify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// ErrNoAttachmentContent is returned when neither a PDF buffer nor a
// readable PDF path was supplied.
var ErrNoAttachmentContent = errors.New("no PDF content provided, supply either a path or a buffer")

// DeliveryError wraps a mail transport failure so callers can record the
// reason on the certificate record instead of failing the whole batch.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("certificate delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// SendRequest carries everything needed to deliver one certificate.
// Exactly one of PDFBytes / PDFPath must resolve to content.
type SendRequest struct {
	To              string
	ParticipantName string
	EventName       string
	CertificateID   string
	PDFPath         string
	PDFBytes        []byte
}

// Dispatcher sends branded certificate emails through the shared SMTP dialer.
type Dispatcher struct {
	dialer      *gomail.Dialer
	from        string
	collegeName string
}

func NewDispatcher(dialer *gomail.Dialer, from string, collegeName string) *Dispatcher {
	return &Dispatcher{
		dialer:      dialer,
		from:        from,
		collegeName: collegeName,
	}
}

// SendCertificate emails the rendered PDF as a named attachment.
func (d *Dispatcher) SendCertificate(req SendRequest) error {
	content := req.PDFBytes
	if len(content) == 0 && req.PDFPath != "" {
		raw, err := os.ReadFile(req.PDFPath)
		if err == nil {
			content = raw
		}
	}
	if len(content) == 0 {
		return ErrNoAttachmentContent
	}

	name := req.ParticipantName
	if name == "" {
		name = "Participant"
	}
	attachmentName := fmt.Sprintf("Certificate_%s.pdf", strings.ReplaceAll(name, " ", "_"))

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", mailer.FormatAddress(d.from, d.collegeName))
	mailer.SetHeader("To", req.To)
	mailer.SetHeader("Subject", fmt.Sprintf("Your Certificate of Participation — %s", req.EventName))
	mailer.SetBody("text/html", buildCertificateEmailHTML(name, req.EventName, req.CertificateID, d.collegeName))

	mailer.Attach(attachmentName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {"application/pdf"},
		}),
	)

	if err := d.dialer.DialAndSend(mailer); err != nil {
		slog.Error("Error sending certificate mail", "error", err, "recipient", req.To, "certificateId", req.CertificateID)
		return &DeliveryError{Err: err}
	}

	slog.Info("Certificate mail sent", "recipient", req.To, "certificateId", req.CertificateID)
	return nil
}

func buildCertificateEmailHTML(participantName string, eventName string, certificateId string, collegeName string) string {
	issuedDate := time.Now().Format("02 January 2006")

	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8"/>
			<style>
				body { font-family: Georgia, serif; margin: 0; padding: 0; background: #f4f4f4; }
				.container { max-width: 600px; margin: 30px auto; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
				.header { background: linear-gradient(135deg, #8B1A1A, #C2410C); padding: 30px; text-align: center; }
				.header h1 { color: #fff; margin: 0; font-size: 22px; letter-spacing: 1px; }
				.header p { color: rgba(255,255,255,0.8); margin: 5px 0 0; font-size: 13px; }
				.body { padding: 30px; }
				.greeting { font-size: 16px; color: #333; margin-bottom: 15px; }
				.cert-box { background: #FFF8F0; border-left: 4px solid #C2410C; padding: 18px 20px; margin: 20px 0; border-radius: 0 6px 6px 0; }
				.cert-box .event { font-size: 15px; color: #7C2D12; font-weight: bold; margin-bottom: 6px; }
				.cert-box .meta { font-size: 13px; color: #666; }
				.cert-id { font-family: monospace; font-size: 12px; color: #999; background: #f9f9f9; padding: 6px 10px; border-radius: 4px; display: inline-block; margin-top: 10px; }
				.note { font-size: 13px; color: #555; line-height: 1.7; margin: 15px 0; }
				.footer { background: #f9f9f9; padding: 18px 30px; text-align: center; font-size: 12px; color: #999; border-top: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Certificate of Participation</h1>
					<p>%s</p>
				</div>
				<div class="body">
					<div class="greeting">Dear <strong>%s</strong>,</div>
					<p class="note">
						We are delighted to present you with your Certificate of Participation.
						Please find your certificate attached to this email.
					</p>
					<div class="cert-box">
						<div class="event">%s</div>
						<div class="meta">Issued on: %s</div>
						<div class="cert-id">Certificate ID: %s</div>
					</div>
					<p class="note">
						This certificate acknowledges your valuable participation and contribution
						to the event. We hope the experience was enriching for your academic and
						professional journey.
					</p>
				</div>
				<div class="footer">
					This is an auto-generated email. Please do not reply to this message.<br/>
					© %d %s
				</div>
			</div>
		</body>
		</html>
	`, collegeName, participantName, eventName, issuedDate, certificateId, time.Now().Year(), collegeName)
}
