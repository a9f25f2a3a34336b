package certify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSendCertificate_NoContent(t *testing.T) {
	d := NewDispatcher(gomail.NewDialer("localhost", 587, "", ""), "no-reply@example.com", "DAV College")

	err := d.SendCertificate(SendRequest{
		To:            "u1@example.com",
		EventName:     "Tech Fest 2026",
		CertificateID: "CERT-20260301-01-1234",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAttachmentContent)
}

func TestSendCertificate_MissingPathWithoutBytes(t *testing.T) {
	d := NewDispatcher(gomail.NewDialer("localhost", 587, "", ""), "no-reply@example.com", "DAV College")

	err := d.SendCertificate(SendRequest{
		To:      "u1@example.com",
		PDFPath: filepath.Join(t.TempDir(), "missing.pdf"),
	})

	assert.ErrorIs(t, err, ErrNoAttachmentContent)
}

func TestSendCertificate_UnreachableServerWrapsDeliveryError(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "cert.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644))

	// Port 1 refuses connections, so the dial itself fails.
	d := NewDispatcher(gomail.NewDialer("127.0.0.1", 1, "", ""), "no-reply@example.com", "DAV College")

	err := d.SendCertificate(SendRequest{
		To:              "u1@example.com",
		ParticipantName: "Ann Lee",
		EventName:       "Tech Fest 2026",
		CertificateID:   "CERT-20260301-01-1234",
		PDFPath:         pdfPath,
	})

	require.Error(t, err)
	var deliveryErr *DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
	assert.NotNil(t, errors.Unwrap(deliveryErr))
}

func TestDeliveryError_Unwrap(t *testing.T) {
	cause := errors.New("smtp timeout")
	err := &DeliveryError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "smtp timeout")
}

func TestBuildCertificateEmailHTML(t *testing.T) {
	html := buildCertificateEmailHTML("Ann Lee", "Tech Fest 2026", "CERT-20260301-01-1234", "DAV College")

	assert.Contains(t, html, "Ann Lee")
	assert.Contains(t, html, "Tech Fest 2026")
	assert.Contains(t, html, "CERT-20260301-01-1234")
	assert.Contains(t, html, "DAV College")
	assert.Contains(t, html, "Certificate of Participation")
}
